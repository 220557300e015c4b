package executor_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	liscaferrors "github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/executor"
	"github.com/arthur-debert/liscaf/pkg/filesystem"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFS implements types.FS for testing
type MockFS struct {
	mock.Mock
}

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) Lstat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	args := m.Called(name, data, perm)
	return args.Error(0)
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)
	return args.Error(0)
}

func (m *MockFS) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockFS) RemoveAll(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFS) ReadDir(name string) ([]fs.DirEntry, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fs.DirEntry), args.Error(1)
}

func written(action types.FileAction) merge.Resolution {
	w := merge.Write{Op: merge.OpWrite, Path: action.Path, Content: action.Content, Mode: action.Mode}
	if action.IsDir() {
		w = merge.Write{Op: merge.OpMkdir, Path: action.Path, Mode: action.Mode}
	}
	return merge.Resolution{Action: action, Outcome: types.OutcomeWritten, Writes: []merge.Write{w}}
}

func TestApply(t *testing.T) {
	fsys := filesystem.NewMemory()
	exec := executor.New(executor.Options{FS: fsys})

	resolutions := []merge.Resolution{
		written(types.FileAction{Kind: types.ActionCreateDir, Path: "src", Mode: 0755}),
		written(types.FileAction{Kind: types.ActionWriteFile, Path: "src/main.go", Content: []byte("package main\n"), Mode: 0644}),
		{Outcome: types.OutcomeSkipped},
	}

	report := exec.Apply(context.Background(), "/out", resolutions)
	assert.False(t, report.Failed())
	assert.Equal(t, 2, report.Applied)

	data, err := fsys.ReadFile("/out/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
}

func TestApplyDryRun(t *testing.T) {
	fsys := filesystem.NewMemory()
	exec := executor.New(executor.Options{FS: fsys, DryRun: true})

	report := exec.Apply(context.Background(), "/out", []merge.Resolution{
		written(types.FileAction{Kind: types.ActionWriteFile, Path: "a.txt", Content: []byte("a")}),
	})
	assert.True(t, report.DryRun)
	assert.Equal(t, 0, report.Applied)

	_, err := fsys.Stat("/out")
	assert.Error(t, err)
}

func TestApplyContinuesAfterFailure(t *testing.T) {
	mockFS := new(MockFS)
	mockFS.On("MkdirAll", mock.Anything, mock.Anything).Return(nil)
	mockFS.On("WriteFile", "/out/a.txt", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	mockFS.On("WriteFile", "/out/b.txt", []byte("b"), fs.FileMode(0644)).Return(nil)

	exec := executor.New(executor.Options{FS: mockFS})
	report := exec.Apply(context.Background(), "/out", []merge.Resolution{
		written(types.FileAction{Kind: types.ActionWriteFile, Path: "a.txt", Content: []byte("a")}),
		written(types.FileAction{Kind: types.ActionWriteFile, Path: "b.txt", Content: []byte("b")}),
	})

	assert.True(t, report.Failed())
	assert.Equal(t, 1, report.Applied)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "a.txt", report.Failures[0].Path)
	assert.True(t, liscaferrors.IsErrorCode(report.Failures[0].Err, liscaferrors.ErrWrite))
	mockFS.AssertExpectations(t)
}

func TestApplyCancelled(t *testing.T) {
	fsys := filesystem.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := executor.New(executor.Options{FS: fsys}).Apply(ctx, "/out", []merge.Resolution{
		written(types.FileAction{Kind: types.ActionWriteFile, Path: "a.txt", Content: []byte("a")}),
	})
	assert.True(t, report.Cancelled)
	assert.True(t, report.Failed())
	_, err := fsys.Stat("/out/a.txt")
	assert.Error(t, err)
}

func TestApplyInPlace(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/tree/acme-app/sub", 0755))
	require.NoError(t, fsys.WriteFile("/tree/acme-app/sub/x.txt", []byte("plain"), 0644))
	require.NoError(t, fsys.WriteFile("/tree/acme-app/main.go", []byte("AcmeApp"), 0644))
	require.NoError(t, fsys.WriteFile("/tree/keep.txt", []byte("keep"), 0644))
	require.NoError(t, fsys.WriteFile("/tree/edit.txt", []byte("acme-app"), 0644))

	actions := []types.FileAction{
		{Kind: types.ActionWriteFile, Path: "edit.txt", Source: "edit.txt", Content: []byte("my-app"), Substitutions: 1},
		{Kind: types.ActionWriteFile, Path: "keep.txt", Source: "keep.txt", Content: []byte("keep")},
		{Kind: types.ActionCreateDir, Path: "my-app", Source: "acme-app", Mode: 0755},
		{Kind: types.ActionWriteFile, Path: "my-app/main.go", Source: "acme-app/main.go", Content: []byte("MyApp"), Substitutions: 1},
		{Kind: types.ActionCreateDir, Path: "my-app/sub", Source: "acme-app/sub", Mode: 0755},
		{Kind: types.ActionRenameOnly, Path: "my-app/sub/x.txt", Source: "acme-app/sub/x.txt", Content: []byte("plain")},
	}

	report := executor.New(executor.Options{FS: fsys}).ApplyInPlace(context.Background(), "/tree", actions)
	assert.False(t, report.Failed())
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 4, report.Removed)

	for path, want := range map[string]string{
		"/tree/edit.txt":         "my-app",
		"/tree/keep.txt":         "keep",
		"/tree/my-app/main.go":   "MyApp",
		"/tree/my-app/sub/x.txt": "plain",
	} {
		data, err := fsys.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, string(data), path)
	}

	_, err := fsys.Stat("/tree/acme-app")
	assert.Error(t, err)
}

func TestApplyInPlaceKeepsOriginalOnFailure(t *testing.T) {
	mockFS := new(MockFS)
	mockFS.On("MkdirAll", mock.Anything, mock.Anything).Return(nil)
	mockFS.On("WriteFile", "/tree/new.txt", mock.Anything, mock.Anything).Return(errors.New("read-only"))

	report := executor.New(executor.Options{FS: mockFS}).ApplyInPlace(context.Background(), "/tree", []types.FileAction{
		{Kind: types.ActionRenameOnly, Path: "new.txt", Source: "old.txt", Content: []byte("x")},
	})

	assert.True(t, report.Failed())
	assert.Equal(t, 0, report.Removed)
	mockFS.AssertNotCalled(t, "Remove", mock.Anything)
}

func TestApplyInPlaceDryRun(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/tree", 0755))
	require.NoError(t, fsys.WriteFile("/tree/old.txt", []byte("x"), 0644))

	report := executor.New(executor.Options{FS: fsys, DryRun: true}).ApplyInPlace(context.Background(), "/tree", []types.FileAction{
		{Kind: types.ActionRenameOnly, Path: "new.txt", Source: "old.txt", Content: []byte("x")},
	})
	assert.True(t, report.DryRun)

	_, err := fsys.Stat("/tree/old.txt")
	assert.NoError(t, err)
	_, err = fsys.Stat("/tree/new.txt")
	assert.Error(t, err)
}
