package fetch

import (
	"net/url"
	"strings"
)

// Board is a recognised job board.
type Board string

const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardGeneric    Board = "generic"
)

type boardRules struct {
	hosts   []string
	content []string
	noise   []string
}

var boards = map[Board]boardRules{
	BoardGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	BoardLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	BoardWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	BoardAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='descriptionText']", "main"},
		noise:   []string{"[class*='applicationForm']"},
	},
}

// genericContent is tried for pages on unrecognised hosts.
var genericContent = []string{
	".job-description",
	"#job-description",
	".job-content",
	".job-details",
	".posting-content",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
	".content",
}

// sharedNoise is removed from postings on every board.
var sharedNoise = []string{
	"form",
	".application-form",
	"#application-form",
	".apply-button-container",
	".eeo-statement",
	".voluntary-disclosure",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectBoard identifies the job board a URL belongs to.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return BoardGeneric
	}
	host := strings.ToLower(parsed.Hostname())
	for board, rules := range boards {
		for _, h := range rules.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return board
			}
		}
	}
	return BoardGeneric
}

// ContentSelectors returns the posting-body selectors for a board, most
// specific first. Unrecognised boards use generic job-posting selectors.
func ContentSelectors(board Board) []string {
	rules, ok := boards[board]
	if !ok {
		return append([]string(nil), genericContent...)
	}
	return append(append([]string(nil), rules.content...), genericContent...)
}

// NoiseSelectors returns the elements to drop before extracting a board's posting.
func NoiseSelectors(board Board) []string {
	out := append([]string(nil), sharedNoise...)
	return append(out, boards[board].noise...)
}
