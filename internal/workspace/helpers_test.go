package workspace

import (
	"context"
	"io"
	"sync"

	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/types"
)

// fakeBackend records calls and delegates to optional per-endpoint funcs.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	uploads []api.Upload
	bodies  []string

	login    func(types.LoginRequest) (*types.LoginResponse, error)
	register func(types.RegisterRequest) (*types.RegisterResponse, error)
	extract  func(ctx context.Context, text string) ([]string, error)
	upload   func(api.Upload, string) (*types.AnalysisResult, error)
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Login(_ context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	f.record("login")
	if f.login == nil {
		return &types.LoginResponse{Token: "tok", Name: "Dana", UserID: "u-1"}, nil
	}
	return f.login(req)
}

func (f *fakeBackend) Register(_ context.Context, req types.RegisterRequest) (*types.RegisterResponse, error) {
	f.record("register")
	if f.register == nil {
		return &types.RegisterResponse{}, nil
	}
	return f.register(req)
}

func (f *fakeBackend) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	f.record("extract")
	if f.extract == nil {
		return nil, nil
	}
	return f.extract(ctx, text)
}

func (f *fakeBackend) UploadResume(_ context.Context, up api.Upload) (*types.AnalysisResult, error) {
	f.record("upload:" + up.FileName)
	body, err := io.ReadAll(up.Content)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, up)
	f.bodies = append(f.bodies, string(body))
	f.mu.Unlock()

	if f.upload == nil {
		return &types.AnalysisResult{CandidateName: up.FileName, Score: 50, Status: "Review"}, nil
	}
	return f.upload(up, string(body))
}

func loggedInManager() *session.Manager {
	mgr := session.NewManager(session.NewMemoryStorage(), false)
	_, _ = mgr.Login("tok", types.User{ID: "u-1", Name: "Dana"})
	return mgr
}
