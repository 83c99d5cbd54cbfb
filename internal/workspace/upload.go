package workspace

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/intake"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// DefaultJobID is the placeholder job identifier sent with every upload
// until job postings are managed by the client.
const DefaultJobID = "60d5ecb86d1f2e2d8c8b4567"

// Upload workflow notices.
const (
	NoticeNoFiles      = "Please select files first"
	NoticeBatchSuccess = "All resumes analyzed successfully!"
	NoticeBatchFailure = "Error uploading resumes. Make sure the backend is running."
)

// ErrNoFiles is returned by Upload when the queue is empty.
var ErrNoFiles = errors.New("no files queued")

// ErrUploadInFlight is returned by Upload while another batch is running.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// BatchError reports the file that stopped a batch.
type BatchError struct {
	Index int
	File  intake.PendingFile
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("upload of %s (file %d) failed: %v", e.File.Name, e.Index+1, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Outcome is the result of uploading one file of a batch.
type Outcome struct {
	Index  int
	File   intake.PendingFile
	Result *types.AnalysisResult
	Err    error
}

// Uploader sends resumes one at a time.
type Uploader struct {
	backend Backend
	jobID   string
}

// NewUploader creates an uploader that tags every upload with jobID
// (DefaultJobID when empty).
func NewUploader(backend Backend, jobID string) *Uploader {
	if jobID == "" {
		jobID = DefaultJobID
	}
	return &Uploader{backend: backend, jobID: jobID}
}

// JobID returns the job identifier sent with uploads.
func (u *Uploader) JobID() string {
	return u.jobID
}

// Stream returns a lazy sequence of per-file outcomes. Each upload starts
// only when the consumer asks for the next outcome, and the sequence ends
// after the first failed outcome.
func (u *Uploader) Stream(ctx context.Context, batch []intake.PendingFile, jobDescription string) iter.Seq[Outcome] {
	return func(yield func(Outcome) bool) {
		for i, file := range batch {
			out := Outcome{Index: i, File: file}
			out.Result, out.Err = u.uploadOne(ctx, file, jobDescription)
			if !yield(out) || out.Err != nil {
				return
			}
		}
	}
}

func (u *Uploader) uploadOne(ctx context.Context, file intake.PendingFile, jobDescription string) (*types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Path, err)
	}
	defer content.Close()

	return u.backend.UploadResume(ctx, api.Upload{
		FileName:       file.Name,
		Content:        content,
		JobID:          u.jobID,
		JobDescription: jobDescription,
	})
}

// Upload sends every queued file as one batch. Results are appended, in
// submission order, only if every file succeeds; the queue is then cleared.
// On the first failure nothing is appended, the queue is left as it was and
// a *BatchError is returned. onProgress, if non-nil, sees each outcome.
func (w *Workspace) Upload(ctx context.Context, onProgress func(Outcome)) error {
	if !w.Authenticated() {
		return ErrNotAuthenticated
	}

	batch := w.Queue.Files()
	if len(batch) == 0 {
		w.setNotice(NoticeNoFiles)
		return ErrNoFiles
	}

	w.mu.Lock()
	if w.uploading {
		w.mu.Unlock()
		return ErrUploadInFlight
	}
	w.uploading = true
	jobDescription := w.jobDescription
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.uploading = false
		w.mu.Unlock()
	}()

	w.logf("uploading batch of %d file(s) for job %s", len(batch), w.uploader.JobID())

	buffered := make([]types.AnalysisResult, 0, len(batch))
	for out := range w.uploader.Stream(ctx, batch, jobDescription) {
		if onProgress != nil {
			onProgress(out)
		}
		if out.Err != nil {
			w.logf("upload error: %v", out.Err)
			w.setNotice(NoticeBatchFailure)
			return &BatchError{Index: out.Index, File: out.File, Err: out.Err}
		}
		if out.Result == nil {
			err := errors.New("response has no analysis")
			w.setNotice(NoticeBatchFailure)
			return &BatchError{Index: out.Index, File: out.File, Err: err}
		}
		buffered = append(buffered, *out.Result)
	}

	w.Results.append(buffered)
	w.Queue.Clear()
	w.setNotice(NoticeBatchSuccess)
	w.logf("batch complete: %d result(s)", len(buffered))
	return nil
}
