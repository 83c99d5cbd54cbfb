// Package workspace holds the authenticated workspace state: job description,
// extracted skills, the pending file queue, upload workflow and results.
package workspace

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/intake"
	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// ErrNotAuthenticated is returned by workspace operations when no session is active.
var ErrNotAuthenticated = errors.New("not logged in")

// Backend is the subset of the remote API the workspace depends on.
// *api.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error)
	Register(ctx context.Context, req types.RegisterRequest) (*types.RegisterResponse, error)
	ExtractSkills(ctx context.Context, text string) ([]string, error)
	UploadResume(ctx context.Context, up api.Upload) (*types.AnalysisResult, error)
}

var _ Backend = (*api.Client)(nil)

// Options configures a Workspace.
type Options struct {
	JobID   string
	Policy  intake.Policy
	Verbose bool
}

// Workspace aggregates the per-process state shown once a user is logged in.
// None of it is persisted; it lives as long as the process.
type Workspace struct {
	session  *session.Manager
	backend  Backend
	verbose  bool
	Skills   *SkillExtractor
	Queue    *intake.Queue
	Results  *Results
	uploader *Uploader

	mu             sync.RWMutex
	jobDescription string
	notice         string
	uploading      bool
}

// New creates an empty workspace bound to a session manager and backend.
func New(mgr *session.Manager, backend Backend, opts Options) *Workspace {
	return &Workspace{
		session:  mgr,
		backend:  backend,
		verbose:  opts.Verbose,
		Skills:   NewSkillExtractor(backend, opts.Verbose),
		Queue:    intake.NewQueue(opts.Policy),
		Results:  NewResults(),
		uploader: NewUploader(backend, opts.JobID),
	}
}

// Authenticated reports whether the workspace may be used.
func (w *Workspace) Authenticated() bool {
	return w.session.State() == session.Authenticated
}

// SetJobDescription replaces the free-text job description. It does not
// trigger skill extraction; call Blur for that.
func (w *Workspace) SetJobDescription(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.jobDescription = text
}

// JobDescription returns the current job description text.
func (w *Workspace) JobDescription() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.jobDescription
}

// Blur runs skill extraction on the current job description.
func (w *Workspace) Blur(ctx context.Context) error {
	if !w.Authenticated() {
		return ErrNotAuthenticated
	}
	return w.Skills.Blur(ctx, w.JobDescription())
}

// Notice returns the last user-facing workflow message.
func (w *Workspace) Notice() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.notice
}

// Uploading reports whether an upload batch is in progress.
func (w *Workspace) Uploading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.uploading
}

// Reset discards all workspace state, as a page reload would.
func (w *Workspace) Reset() {
	w.Queue.Clear()
	w.Results.reset()
	w.Skills.reset()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.jobDescription = ""
	w.notice = ""
}

func (w *Workspace) setNotice(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notice = msg
}

func (w *Workspace) logf(format string, args ...any) {
	if w.verbose {
		log.Printf("[UPLOAD] "+format, args...)
	}
}
