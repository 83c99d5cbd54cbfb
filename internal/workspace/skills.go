package workspace

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
)

// ErrSuperseded is returned by Blur when a newer Blur started before this
// one's response arrived. The response is discarded.
var ErrSuperseded = errors.New("skill extraction superseded by a newer request")

// SkillExtractor keeps the skill tags derived from the job description.
// Each Blur takes a new generation; only the response for the latest
// generation is applied.
type SkillExtractor struct {
	backend Backend
	verbose bool

	mu         sync.Mutex
	generation uint64
	extracting bool
	skills     []string
	lastErr    error
}

// NewSkillExtractor creates an extractor with no skills.
func NewSkillExtractor(backend Backend, verbose bool) *SkillExtractor {
	return &SkillExtractor{backend: backend, verbose: verbose}
}

// Blur extracts skills from text. Blank text clears the skills without a
// network call. A backend failure keeps the previous skills and is recorded
// in LastError rather than returned.
func (s *SkillExtractor) Blur(ctx context.Context, text string) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation

	if strings.TrimSpace(text) == "" {
		s.skills = nil
		s.extracting = false
		s.lastErr = nil
		s.mu.Unlock()
		return nil
	}
	s.extracting = true
	s.mu.Unlock()

	skills, err := s.backend.ExtractSkills(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logf("dropping response for generation %d (latest is %d)", gen, s.generation)
		return ErrSuperseded
	}

	s.extracting = false
	if err != nil {
		s.lastErr = err
		s.logf("skill extraction error: %v", err)
		return nil
	}

	s.lastErr = nil
	s.skills = append([]string(nil), skills...)
	s.logf("extracted %d skills", len(skills))
	return nil
}

// Skills returns a copy of the current skill tags.
func (s *SkillExtractor) Skills() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.skills...)
}

// Extracting reports whether the latest request is still outstanding.
func (s *SkillExtractor) Extracting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extracting
}

// LastError returns the error from the latest completed extraction, if any.
func (s *SkillExtractor) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *SkillExtractor) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.skills = nil
	s.extracting = false
	s.lastErr = nil
}

func (s *SkillExtractor) logf(format string, args ...any) {
	if s.verbose {
		log.Printf("[SKILLS] "+format, args...)
	}
}
