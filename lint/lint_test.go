package lint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/pycheck/internal/pyast"
	"github.com/gnolang/pycheck/internal/types"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(ctx context.Context, filePath string) (types.FileReport, error) {
	args := m.Called(filePath)
	return args.Get(0).(types.FileReport), args.Error(1)
}

func (m *mockLintEngine) RunSource(ctx context.Context, filePath string, source []byte) (types.FileReport, error) {
	args := m.Called(filePath, source)
	return args.Get(0).(types.FileReport), args.Error(1)
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := types.FileReport{
		Path:       "test.py",
		Violations: []types.Violation{{Code: types.TooLong, Line: 1}},
	}
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", "test.py").Return(expected, nil)

	report, err := ProcessFile(context.Background(), mockEngine, "test.py")

	assert.NoError(t, err)
	assert.Equal(t, expected, report)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	source := []byte("x = 1;\n")
	expected := types.FileReport{
		Path:       "<stdin>",
		Violations: []types.Violation{{Code: types.Semicolon, Line: 1}},
	}
	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", "<stdin>", source).Return(expected, nil)

	run, err := ProcessSource(context.Background(), mockEngine, "<stdin>", source)

	require.NoError(t, err)
	assert.Equal(t, expected, run.Reports["<stdin>"])
	mockEngine.AssertExpectations(t)
}

func TestProcessFilesWithMock(t *testing.T) {
	t.Parallel()
	logger, _ := zap.NewProduction()
	tempDir := t.TempDir()

	paths := createTempFiles(t, tempDir, "test1.py", "test2.py")
	reports := []types.FileReport{
		{Path: paths[0], Violations: []types.Violation{{Code: types.Todo, Line: 3}}},
		{Path: paths[1]},
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return(reports[0], nil)
	mockEngine.On("Run", paths[1]).Return(reports[1], nil)

	run, err := ProcessFiles(context.Background(), logger, mockEngine, []string{tempDir}, Options{})

	require.NoError(t, err)
	assert.Equal(t, paths, run.Paths())
	assert.Equal(t, reports[0], run.Reports[paths[0]])
	assert.Equal(t, reports[1], run.Reports[paths[1]])
	mockEngine.AssertExpectations(t)
}

func TestProcessFilesIsolatesFailures(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	good := filepath.Join(tempDir, "good.py")
	bad := filepath.Join(tempDir, "bad.py")
	require.NoError(t, os.WriteFile(good, []byte("Value = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("def foo(:\n    pass\n"), 0o644))
	missing := filepath.Join(tempDir, "missing.py")

	run, err := ProcessFiles(context.Background(), nil, New(), []string{good, bad, missing}, Options{Jobs: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{good}, run.Paths())
	assert.Equal(t, []types.Violation{
		{Code: types.VariableSnakeCase, Line: 1, Detail: "Value"},
	}, run.Reports[good].Violations)

	assert.Equal(t, []string{bad, missing}, run.FailedPaths())

	var synErr *pyast.SyntaxError
	assert.True(t, errors.As(run.Failures[bad], &synErr))
	assert.True(t, errors.Is(run.Failures[missing], os.ErrNotExist))
}

func TestProcessFilesSkipsNonTargets(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "readme.txt")

	mockEngine := new(mockLintEngine)
	run, err := ProcessFiles(context.Background(), nil, mockEngine, paths, Options{})

	require.NoError(t, err)
	assert.Empty(t, run.Paths())
	assert.Empty(t, run.FailedPaths())
	mockEngine.AssertNotCalled(t, "Run", mock.Anything)
}

func TestProcessFilesDeduplicates(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "a.py")

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return(types.FileReport{Path: paths[0]}, nil).Once()

	run, err := ProcessFiles(context.Background(), nil, mockEngine, []string{paths[0], tempDir}, Options{})

	require.NoError(t, err)
	assert.Equal(t, paths, run.Paths())
	mockEngine.AssertExpectations(t)
}

func TestProcessFilesCanceled(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	createTempFiles(t, tempDir, "a.py", "b.py")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := ProcessFiles(ctx, nil, New(), []string{tempDir}, Options{})
	assert.Nil(t, run)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFilesIsDeterministic(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	for i, name := range []string{"c.py", "a.py", "b.py"} {
		code := []byte("def  Foo(x=[]):  # todo\n    pass\n")
		if i == 1 {
			code = []byte("y = 1 # comment\n")
		}
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), code, 0o644))
	}

	first, err := ProcessFiles(context.Background(), nil, New(), []string{tempDir}, Options{Jobs: 3})
	require.NoError(t, err)
	second, err := ProcessFiles(context.Background(), nil, New(), []string{tempDir}, Options{Jobs: 1})
	require.NoError(t, err)

	assert.Equal(t, first.Reports, second.Reports)
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		f, err := os.Create(filePath)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		paths = append(paths, filePath)
	}
	return paths
}
