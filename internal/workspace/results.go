package workspace

import (
	"fmt"
	"sync"

	"github.com/jonathan/hiring-assistant/internal/types"
)

// Results is the append-only list of analyses plus the detail view binding.
type Results struct {
	mu       sync.RWMutex
	items    []types.AnalysisResult
	selected *types.AnalysisResult
}

// NewResults creates an empty result list.
func NewResults() *Results {
	return &Results{}
}

// All returns a copy of the results in display order.
func (r *Results) All() []types.AnalysisResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.AnalysisResult, len(r.items))
	for i, item := range r.items {
		out[i] = cloneResult(item)
	}
	return out
}

// Len returns the number of results.
func (r *Results) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Select opens the detail view for the result at index i, replacing any
// existing selection.
func (r *Results) Select(i int) (types.AnalysisResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.items) {
		return types.AnalysisResult{}, fmt.Errorf("no result at index %d (have %d)", i, len(r.items))
	}
	item := cloneResult(r.items[i])
	r.selected = &item
	return cloneResult(item), nil
}

// Close hides the detail view.
func (r *Results) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = nil
}

// Selected returns the result bound to the detail view and whether the view is open.
func (r *Results) Selected() (types.AnalysisResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.selected == nil {
		return types.AnalysisResult{}, false
	}
	return cloneResult(*r.selected), true
}

func (r *Results) append(batch []types.AnalysisResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, batch...)
}

func (r *Results) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	r.selected = nil
}

func cloneResult(in types.AnalysisResult) types.AnalysisResult {
	out := in
	out.InterviewQuestions = append([]string(nil), in.InterviewQuestions...)
	return out
}
