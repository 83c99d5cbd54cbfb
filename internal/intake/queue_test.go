package intake

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/hiring-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(files []PendingFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindPDF, KindOf("cv.PDF"))
	assert.Equal(t, KindDOCX, KindOf("/tmp/cv.docx"))
	assert.Equal(t, KindOther, KindOf("cv.doc"))
	assert.Equal(t, KindOther, KindOf("README"))
}

func TestAddPicked_KeepsOrderAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.pdf", "a")
	b := testutil.WriteFile(t, dir, "b.docx", "b")

	q := NewQueue(DefaultPolicy())
	added, err := q.AddPicked(a, b)
	require.NoError(t, err)
	assert.Len(t, added, 2)

	_, err = q.AddPicked(a)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.pdf", "b.docx", "a.pdf"}, names(q.Files()))
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, SourcePicker, q.Files()[0].Source)
	assert.Equal(t, int64(1), q.Files()[0].Size)
}

func TestAddPicked_RejectsButKeepsSiblings(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteFile(t, dir, "good.pdf", "x")
	txt := testutil.WriteFile(t, dir, "notes.txt", "x")

	q := NewQueue(DefaultPolicy())
	added, err := q.AddPicked(txt, good, filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)

	assert.Equal(t, []string{"good.pdf"}, names(added))
	assert.Equal(t, []string{"good.pdf"}, names(q.Files()))

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, err.Error(), "unsupported file type \".txt\"")
	assert.Contains(t, err.Error(), "cannot stat")
}

func TestPolicy_MaxSize(t *testing.T) {
	dir := t.TempDir()
	big := testutil.WriteFile(t, dir, "big.pdf", strings.Repeat("x", 11))

	q := NewQueue(Policy{AllowedExtensions: []string{".pdf"}, MaxSize: 10})
	_, err := q.AddPicked(big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 10")
	assert.Equal(t, 0, q.Len())
}

func TestPolicy_Permissive(t *testing.T) {
	dir := t.TempDir()
	txt := testutil.WriteFile(t, dir, "notes.txt", strings.Repeat("x", 100))

	q := NewQueue(Policy{AllowedExtensions: []string{".pdf"}, MaxSize: 10, Permissive: true})
	_, err := q.Drop(txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, names(q.Files()))
	assert.Equal(t, KindOther, q.Files()[0].Kind)
}

func TestPolicy_NotRegularFile(t *testing.T) {
	q := NewQueue(Policy{Permissive: true})
	_, err := q.AddPicked(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}

func TestDrop_ExpandsDirectorySorted(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.pdf", "b")
	testutil.WriteFile(t, dir, "a.docx", "a")
	testutil.WriteFile(t, dir, "nested/c.pdf", "c")
	single := testutil.WriteFile(t, t.TempDir(), "z.pdf", "z")

	q := NewQueue(DefaultPolicy())
	q.DragEnter()
	assert.True(t, q.Dragging())

	added, err := q.Drop(dir, single)
	require.NoError(t, err)
	assert.False(t, q.Dragging())

	assert.Equal(t, []string{"a.docx", "b.pdf", "z.pdf"}, names(added))
	for _, f := range q.Files() {
		assert.Equal(t, SourceDrop, f.Source)
	}
}

func TestDrop_SameRulesAsPicker(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.pdf", "a")
	testutil.WriteFile(t, dir, "photo.png", "p")

	q := NewQueue(DefaultPolicy())
	added, err := q.Drop(dir)
	require.Error(t, err)
	assert.Equal(t, []string{"a.pdf"}, names(added))

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, filepath.Join(dir, "photo.png"), rejected.Path)
}

func TestDrop_MissingPath(t *testing.T) {
	q := NewQueue(DefaultPolicy())
	_, err := q.Drop(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot stat")
}

func TestClear(t *testing.T) {
	q := NewQueue(DefaultPolicy())
	_, err := q.AddPicked(testutil.WriteFile(t, t.TempDir(), "a.pdf", "a"))
	require.NoError(t, err)

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Files())
}

func TestFiles_ReturnsCopy(t *testing.T) {
	q := NewQueue(DefaultPolicy())
	_, _ = q.AddPicked(testutil.WriteFile(t, t.TempDir(), "a.pdf", "a"))

	files := q.Files()
	files[0].Name = "changed"
	assert.Equal(t, "a.pdf", q.Files()[0].Name)
}

func TestPendingFile_Open(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "a.pdf", "content")
	rc, err := PendingFile{Path: path}.Open()
	require.NoError(t, err)
	defer rc.Close()

	data := make([]byte, 7)
	_, err = rc.Read(data)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	_, err = PendingFile{Path: filepath.Join(t.TempDir(), "x")}.Open()
	assert.True(t, os.IsNotExist(err))
}
