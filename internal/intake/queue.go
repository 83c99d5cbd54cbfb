// Package intake collects resume files selected for upload.
package intake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
)

// Source records which input path a file arrived through.
type Source int

const (
	SourcePicker Source = iota
	SourceDrop
)

func (s Source) String() string {
	if s == SourceDrop {
		return "drop"
	}
	return "picker"
}

// Kind is the document type inferred from the file extension.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindDOCX  Kind = "docx"
	KindOther Kind = "other"
)

// KindOf infers the document type from a file name.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindOther
	}
}

// PendingFile is a file waiting to be uploaded.
type PendingFile struct {
	Path   string
	Name   string
	Size   int64
	Kind   Kind
	Source Source
	Pages  int // set for PDFs when probing is enabled
}

// Open opens the file for reading.
func (f PendingFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// Policy decides which files are accepted into the queue. The same policy
// applies to both picker and drop input.
type Policy struct {
	AllowedExtensions []string // lower-case, with leading dot
	MaxSize           int64    // bytes; 0 means unlimited
	Permissive        bool     // accept anything that is a regular file
	Probe             bool     // open PDF/DOCX files locally before accepting
}

// DefaultPolicy accepts PDF and DOCX files up to 10 MiB.
func DefaultPolicy() Policy {
	return Policy{
		AllowedExtensions: []string{".pdf", ".docx"},
		MaxSize:           10 << 20,
	}
}

// RejectedError reports a file that was not queued.
type RejectedError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *RejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rejected %s: %s: %v", e.Path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("rejected %s: %s", e.Path, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Cause
}

// Queue is the ordered list of files selected for the next batch. The same
// file may be queued more than once.
type Queue struct {
	policy Policy

	mu       sync.Mutex
	files    []PendingFile
	dragging bool
}

// NewQueue creates an empty queue governed by policy.
func NewQueue(policy Policy) *Queue {
	return &Queue{policy: policy}
}

// Policy returns the queue's acceptance policy.
func (q *Queue) Policy() Policy {
	return q.policy
}

// AddPicked appends files chosen through the file picker. Accepted files are
// queued even when siblings are rejected; rejections are joined into the
// returned error.
func (q *Queue) AddPicked(paths ...string) ([]PendingFile, error) {
	return q.add(SourcePicker, paths)
}

// Drop appends dropped files. A dropped directory contributes its regular
// files, sorted by name, without descending into subdirectories.
func (q *Queue) Drop(paths ...string) ([]PendingFile, error) {
	q.DragLeave()

	var expanded []string
	var errs []error
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, &RejectedError{Path: p, Reason: "cannot stat", Cause: err})
			continue
		}
		if !info.IsDir() {
			expanded = append(expanded, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			errs = append(errs, &RejectedError{Path: p, Reason: "cannot read directory", Cause: err})
			continue
		}
		var names []string
		for _, e := range entries {
			if e.Type().IsRegular() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			expanded = append(expanded, filepath.Join(p, n))
		}
	}

	added, err := q.add(SourceDrop, expanded)
	if err != nil {
		errs = append(errs, err)
	}
	return added, errors.Join(errs...)
}

func (q *Queue) add(source Source, paths []string) ([]PendingFile, error) {
	var added []PendingFile
	var errs []error
	for _, p := range paths {
		f, err := q.accept(p, source)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		added = append(added, f)
	}

	q.mu.Lock()
	q.files = append(q.files, added...)
	q.mu.Unlock()

	return added, errors.Join(errs...)
}

func (q *Queue) accept(path string, source Source) (PendingFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return PendingFile{}, &RejectedError{Path: path, Reason: "cannot stat", Cause: err}
	}
	if !info.Mode().IsRegular() {
		return PendingFile{}, &RejectedError{Path: path, Reason: "not a regular file"}
	}

	f := PendingFile{
		Path:   path,
		Name:   filepath.Base(path),
		Size:   info.Size(),
		Kind:   KindOf(path),
		Source: source,
	}

	if q.policy.Permissive {
		return f, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if len(q.policy.AllowedExtensions) > 0 && !slices.Contains(q.policy.AllowedExtensions, ext) {
		return PendingFile{}, &RejectedError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported file type %q (allowed: %s)", ext, strings.Join(q.policy.AllowedExtensions, ", ")),
		}
	}
	if q.policy.MaxSize > 0 && f.Size > q.policy.MaxSize {
		return PendingFile{}, &RejectedError{
			Path:   path,
			Reason: fmt.Sprintf("file is %d bytes, limit is %d", f.Size, q.policy.MaxSize),
		}
	}

	if q.policy.Probe {
		pages, err := Probe(path, f.Kind)
		if err != nil {
			return PendingFile{}, &RejectedError{Path: path, Reason: "unreadable document", Cause: err}
		}
		f.Pages = pages
	}

	return f, nil
}

// Files returns a copy of the queued files in order.
func (q *Queue) Files() []PendingFile {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.files)
}

// Len returns the number of queued files.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.files)
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.files = nil
}

// DragEnter marks a drag hovering over the drop zone. It only affects rendering.
func (q *Queue) DragEnter() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dragging = true
}

// DragLeave clears the drag hover state.
func (q *Queue) DragLeave() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dragging = false
}

// Dragging reports the drag hover state.
func (q *Queue) Dragging() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dragging
}
