package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jonathan/hiring-assistant/internal/fetch"
)

// MaxFileBytes bounds the size of a job-description file.
const MaxFileBytes = 1 << 20

// ErrEmpty is returned when a source yields no text after cleaning.
var ErrEmpty = errors.New("job description is empty")

// Origin identifies where a job description came from.
type Origin string

const (
	OriginText Origin = "text"
	OriginFile Origin = "file"
	OriginURL  Origin = "url"
)

// JobDescription is cleaned job-description text plus where it came from.
type JobDescription struct {
	Text     string
	Origin   Origin
	Location string // file path or URL; empty for inline text
	Title    string // page title for URLs
	Board    fetch.Board
	Hash     string // SHA-256 of Text, hex
	LoadedAt time.Time
	Rendered bool // text came from a headless browser render
}

// Source selects exactly one of the three inputs.
type Source struct {
	Text string
	File string
	URL  string
}

// Options configures URL loading.
type Options struct {
	Fetch      *fetch.Options
	UseBrowser bool
	Render     fetch.Renderer // defaults to headless Chrome
	Verbose    bool
}

// Load reads the job description named by src. Inline text is used verbatim
// apart from cleaning. Exactly one field of src may be set.
func Load(ctx context.Context, src Source, opts *Options) (*JobDescription, error) {
	set := 0
	for _, v := range []string{src.Text, src.File, src.URL} {
		if v != "" {
			set++
		}
	}
	switch {
	case set > 1:
		return nil, fmt.Errorf("choose only one of text, file or URL")
	case src.File != "":
		return FromFile(src.File)
	case src.URL != "":
		return FromURL(ctx, src.URL, opts)
	default:
		return FromText(src.Text), nil
	}
}

// FromText wraps inline text. Blank text is allowed; it clears skills.
func FromText(text string) *JobDescription {
	return newJobDescription(CleanText(text), OriginText, "")
}

// FromFile reads and cleans a plain-text job description.
func FromFile(path string) (*JobDescription, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if info.Size() > MaxFileBytes {
		return nil, fmt.Errorf("job description file %s is %d bytes; limit is %d", path, info.Size(), MaxFileBytes)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := CleanText(string(content))
	if text == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return newJobDescription(text, OriginFile, path), nil
}

// FromURL fetches a posting and extracts its main text using board-specific
// selectors. When the browser is enabled and the plain fetch yields too
// little text, the page is rendered headlessly and extracted again.
func FromURL(ctx context.Context, rawURL string, opts *Options) (*JobDescription, error) {
	if opts == nil {
		opts = &Options{}
	}
	logf := func(format string, args ...any) {
		if opts.Verbose {
			log.Printf("[INGEST] "+format, args...)
		}
	}

	board := fetch.DetectBoard(rawURL)
	logf("fetching %s (board: %s)", rawURL, board)

	page, err := fetch.URL(ctx, rawURL, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job description: %w", err)
	}

	content := fetch.ContentSelectors(board)
	noise := fetch.NoiseSelectors(board)

	text, err := fetch.MainText(page.HTML, content, noise...)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job description: %w", err)
	}
	logf("extracted %d chars over HTTP", len(text))

	rendered := false
	if opts.UseBrowser && fetch.NeedsBrowser(text) {
		render := opts.Render
		if render == nil {
			render = fetch.BrowserRenderer(0, opts.Verbose)
		}
		html, renderErr := render(ctx, rawURL)
		if renderErr != nil {
			logf("browser render failed, keeping HTTP text: %v", renderErr)
		} else if browserText, extractErr := fetch.MainText(html, content, noise...); extractErr == nil && len(browserText) > len(text) {
			text = browserText
			page.HTML = html
			rendered = true
			logf("extracted %d chars from rendered page", len(text))
		}
	}

	text = CleanText(text)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrEmpty)
	}

	jd := newJobDescription(text, OriginURL, rawURL)
	jd.Title = fetch.Title(page.HTML)
	jd.Board = board
	jd.Rendered = rendered
	return jd, nil
}

func newJobDescription(text string, origin Origin, location string) *JobDescription {
	sum := sha256.Sum256([]byte(text))
	return &JobDescription{
		Text:     text,
		Origin:   origin,
		Location: location,
		Hash:     hex.EncodeToString(sum[:]),
		LoadedAt: time.Now().UTC(),
	}
}
