package workspace

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/intake"
	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/testutil"
	"github.com/jonathan/hiring-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueFiles(t *testing.T, w *Workspace, names ...string) {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = testutil.WriteFile(t, dir, name, "content of "+name)
	}
	_, err := w.Queue.AddPicked(paths...)
	require.NoError(t, err)
}

func fileNames(files []intake.PendingFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestUpload_EmptyQueue(t *testing.T) {
	backend := &fakeBackend{}
	w := New(loggedInManager(), backend, Options{Policy: intake.DefaultPolicy()})

	err := w.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFiles)
	assert.Equal(t, NoticeNoFiles, w.Notice())
	assert.Empty(t, backend.Calls())
	assert.Equal(t, 0, w.Results.Len())
}

func TestUpload_RequiresSession(t *testing.T) {
	backend := &fakeBackend{}
	mgr := session.NewManager(session.NewMemoryStorage(), false)
	w := New(mgr, backend, Options{Policy: intake.DefaultPolicy()})

	assert.ErrorIs(t, w.Upload(context.Background(), nil), ErrNotAuthenticated)
	assert.ErrorIs(t, w.Blur(context.Background()), ErrNotAuthenticated)
	assert.Empty(t, backend.Calls())
}

func TestUpload_AllSucceedAppendsInOrder(t *testing.T) {
	backend := &fakeBackend{
		upload: func(up api.Upload, body string) (*types.AnalysisResult, error) {
			return &types.AnalysisResult{CandidateName: "R_" + up.FileName, Score: 80, Status: "Shortlisted"}, nil
		},
	}
	w := New(loggedInManager(), backend, Options{Policy: intake.DefaultPolicy()})
	w.SetJobDescription("Go developer")
	queueFiles(t, w, "a.pdf", "b.docx")

	var progress []int
	err := w.Upload(context.Background(), func(o Outcome) { progress = append(progress, o.Index) })
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, progress)
	assert.Equal(t, []string{"upload:a.pdf", "upload:b.docx"}, backend.Calls())

	results := w.Results.All()
	require.Len(t, results, 2)
	assert.Equal(t, "R_a.pdf", results[0].CandidateName)
	assert.Equal(t, "R_b.docx", results[1].CandidateName)

	assert.Equal(t, 0, w.Queue.Len())
	assert.Equal(t, NoticeBatchSuccess, w.Notice())
	assert.False(t, w.Uploading())

	for _, up := range backend.uploads {
		assert.Equal(t, DefaultJobID, up.JobID)
		assert.Equal(t, "Go developer", up.JobDescription)
	}
	assert.Equal(t, []string{"content of a.pdf", "content of b.docx"}, backend.bodies)
}

func TestUpload_AppendsAfterExistingResults(t *testing.T) {
	backend := &fakeBackend{}
	w := New(loggedInManager(), backend, Options{Policy: intake.DefaultPolicy()})

	queueFiles(t, w, "a.pdf")
	require.NoError(t, w.Upload(context.Background(), nil))
	queueFiles(t, w, "b.pdf", "c.pdf")
	require.NoError(t, w.Upload(context.Background(), nil))

	var names []string
	for _, r := range w.Results.All() {
		names = append(names, r.CandidateName)
	}
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, names)
}

func TestUpload_FailureIsAllOrNothing(t *testing.T) {
	backend := &fakeBackend{
		upload: func(up api.Upload, _ string) (*types.AnalysisResult, error) {
			if up.FileName == "b.pdf" {
				return nil, &api.APIError{StatusCode: 500}
			}
			return &types.AnalysisResult{CandidateName: up.FileName}, nil
		},
	}
	w := New(loggedInManager(), backend, Options{Policy: intake.DefaultPolicy()})
	queueFiles(t, w, "a.pdf", "b.pdf", "c.pdf")

	err := w.Upload(context.Background(), nil)
	require.Error(t, err)

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 1, batchErr.Index)
	assert.Equal(t, "b.pdf", batchErr.File.Name)
	var apiErr *api.APIError
	assert.ErrorAs(t, err, &apiErr)

	assert.Equal(t, 0, w.Results.Len())
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, fileNames(w.Queue.Files()))
	assert.Equal(t, NoticeBatchFailure, w.Notice())
	assert.Equal(t, []string{"upload:a.pdf", "upload:b.pdf"}, backend.Calls())
	assert.False(t, w.Uploading())
}

func TestUpload_MissingFileFailsBatch(t *testing.T) {
	backend := &fakeBackend{}
	w := New(loggedInManager(), backend, Options{Policy: intake.DefaultPolicy()})
	queueFiles(t, w, "a.pdf")

	files := w.Queue.Files()
	require.NoError(t, removeFile(files[0].Path))

	err := w.Upload(context.Background(), nil)
	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Contains(t, err.Error(), "failed to open")
	assert.Empty(t, backend.Calls())
	assert.Equal(t, 1, w.Queue.Len())
}

func TestUpload_ConfiguredJobID(t *testing.T) {
	backend := &fakeBackend{}
	w := New(loggedInManager(), backend, Options{JobID: "job-42", Policy: intake.DefaultPolicy()})
	queueFiles(t, w, "a.pdf")

	require.NoError(t, w.Upload(context.Background(), nil))
	require.Len(t, backend.uploads, 1)
	assert.Equal(t, "job-42", backend.uploads[0].JobID)
}

func TestStream_IsLazy(t *testing.T) {
	backend := &fakeBackend{}
	dir := t.TempDir()
	batch := []intake.PendingFile{
		{Path: testutil.WriteFile(t, dir, "a.pdf", "a"), Name: "a.pdf"},
		{Path: testutil.WriteFile(t, dir, "b.pdf", "b"), Name: "b.pdf"},
	}

	seq := NewUploader(backend, "").Stream(context.Background(), batch, "")
	assert.Empty(t, backend.Calls(), "nothing is sent before iteration")

	for out := range seq {
		require.NoError(t, out.Err)
		assert.Equal(t, 0, out.Index)
		break
	}
	assert.Equal(t, []string{"upload:a.pdf"}, backend.Calls())
}

func TestStream_StopsAfterFailure(t *testing.T) {
	backend := &fakeBackend{
		upload: func(api.Upload, string) (*types.AnalysisResult, error) {
			return nil, errors.New("refused")
		},
	}
	dir := t.TempDir()
	batch := []intake.PendingFile{
		{Path: testutil.WriteFile(t, dir, "a.pdf", "a"), Name: "a.pdf"},
		{Path: testutil.WriteFile(t, dir, "b.pdf", "b"), Name: "b.pdf"},
	}

	var outcomes []Outcome
	for out := range NewUploader(backend, "").Stream(context.Background(), batch, "") {
		outcomes = append(outcomes, out)
	}
	require.Len(t, outcomes, 1)
	assert.EqualError(t, outcomes[0].Err, "refused")
}

func TestStream_CanceledContext(t *testing.T) {
	backend := &fakeBackend{}
	batch := []intake.PendingFile{{Path: testutil.WriteFile(t, t.TempDir(), "a.pdf", "a"), Name: "a.pdf"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for out := range NewUploader(backend, "").Stream(ctx, batch, "") {
		assert.ErrorIs(t, out.Err, context.Canceled)
	}
	assert.Empty(t, backend.Calls())
}

func TestWorkspace_Reset(t *testing.T) {
	w := New(loggedInManager(), &fakeBackend{}, Options{Policy: intake.DefaultPolicy()})
	w.SetJobDescription("jd")
	queueFiles(t, w, "a.pdf")
	require.NoError(t, w.Upload(context.Background(), nil))
	queueFiles(t, w, "b.pdf")

	w.Reset()
	assert.Empty(t, w.JobDescription())
	assert.Equal(t, 0, w.Queue.Len())
	assert.Equal(t, 0, w.Results.Len())
	assert.Empty(t, w.Notice())
}
