// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// mockExecutor records calls and runs a configured function in place of
// the engine.
type mockExecutor struct {
	lookPathErr error
	runFunc     func(ctx context.Context, dir, name string, args []string) ([]byte, error)

	gotDir  string
	gotName string
	gotArgs []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.lookPathErr != nil {
		return "", m.lookPathErr
	}
	return file, nil
}

func (m *mockExecutor) CombinedOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	m.gotDir, m.gotName, m.gotArgs = dir, name, args
	if m.runFunc != nil {
		return m.runFunc(ctx, dir, name, args)
	}
	return nil, nil
}

// writesPDF simulates an engine that produces <stem>.pdf next to the source.
func writesPDF(output string, exitErr error) func(context.Context, string, string, []string) ([]byte, error) {
	return func(_ context.Context, dir, _ string, args []string) ([]byte, error) {
		stem := strings.TrimSuffix(args[0], ".tex")
		if err := os.WriteFile(filepath.Join(dir, stem+".pdf"), []byte("%PDF-1.5"), 0o644); err != nil {
			return nil, err
		}
		return []byte(output), exitErr
	}
}

// fakeRecorder implements Recorder for testing.
type fakeRecorder struct {
	records []types.RenderRecord
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, rec types.RenderRecord) error {
	f.records = append(f.records, rec)
	return f.err
}

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

func newTestRenderer(t *testing.T, exec *mockExecutor, rec Recorder) *Renderer {
	t.Helper()
	return &Renderer{
		OutputDir:  filepath.Join(t.TempDir(), "pdf_outputs"),
		EnginePath: "/opt/tectonic",
		Timeout:    time.Second,
		Recorder:   rec,
		exec:       exec,
		now:        func() time.Time { return fixedNow },
	}
}

func TestRender_Success(t *testing.T) {
	exec := &mockExecutor{runFunc: writesPDF("note: writing paper.pdf", nil)}
	rec := &fakeRecorder{}
	r := newTestRenderer(t, exec, rec)

	res, err := r.Render(context.Background(), `\\section{Intro} “hello”`)
	require.NoError(t, err)

	outDir, _ := filepath.Abs(r.OutputDir)
	assert.Equal(t, filepath.Join(outDir, "paper_20260314_150926.pdf"), res.PDFPath)
	assert.Equal(t, filepath.Join(outDir, "paper_20260314_150926.tex"), res.TexPath)
	assert.True(t, filepath.IsAbs(res.PDFPath))

	assert.Equal(t, outDir, exec.gotDir)
	assert.Equal(t, "/opt/tectonic", exec.gotName)
	assert.Equal(t, []string{"paper_20260314_150926.tex", "--outdir", outDir}, exec.gotArgs)

	src, err := os.ReadFile(res.TexPath)
	require.NoError(t, err)
	assert.Contains(t, string(src), `\documentclass{article}`)
	assert.Contains(t, string(src), "\\section{Intro} ``hello''")

	require.Len(t, rec.records, 1)
	assert.Equal(t, types.RenderSucceeded, rec.records[0].Status)
	assert.Equal(t, res.PDFPath, rec.records[0].PDFPath)
	assert.Equal(t, "note: writing paper.pdf", rec.records[0].Output)
}

func TestRender_NonZeroExitWithPDFSucceeds(t *testing.T) {
	exec := &mockExecutor{runFunc: writesPDF("warning: overfull hbox", errors.New("exit status 1"))}
	r := newTestRenderer(t, exec, nil)

	res, err := r.Render(context.Background(), "text")
	require.NoError(t, err)
	assert.FileExists(t, res.PDFPath)
}

func TestRender_MissingPDFFails(t *testing.T) {
	tests := []struct {
		name    string
		exitErr error
	}{
		{"clean exit", nil},
		{"error exit", errors.New("exit status 1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runFunc: func(context.Context, string, string, []string) ([]byte, error) {
				return []byte("error: Undefined control sequence"), tt.exitErr
			}}
			rec := &fakeRecorder{}
			r := newTestRenderer(t, exec, rec)

			_, err := r.Render(context.Background(), "text")

			var rerr *RenderError
			require.True(t, errors.As(err, &rerr), "want RenderError, got %v", err)
			assert.Equal(t, "error: Undefined control sequence", rerr.Output)
			assert.Contains(t, err.Error(), "Undefined control sequence")
			assert.FileExists(t, rerr.TexPath)

			require.Len(t, rec.records, 1)
			assert.Equal(t, types.RenderFailed, rec.records[0].Status)
			assert.Empty(t, rec.records[0].PDFPath)
		})
	}
}

func TestRender_EngineMissing(t *testing.T) {
	exec := &mockExecutor{lookPathErr: errors.New("no such file")}
	r := newTestRenderer(t, exec, nil)

	_, err := r.Render(context.Background(), "text")

	var rerr *RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, err.Error(), "typesetting engine not available")
	assert.Nil(t, exec.gotArgs, "engine must not be invoked")
}

func TestRender_Timeout(t *testing.T) {
	exec := &mockExecutor{runFunc: func(ctx context.Context, dir, _ string, args []string) ([]byte, error) {
		<-ctx.Done()
		// A PDF left behind by a killed run must not count as success.
		stem := strings.TrimSuffix(args[0], ".tex")
		_ = os.WriteFile(filepath.Join(dir, stem+".pdf"), []byte("partial"), 0o644)
		return []byte("partial output"), ctx.Err()
	}}
	r := newTestRenderer(t, exec, nil)
	r.Timeout = 20 * time.Millisecond

	_, err := r.Render(context.Background(), "text")

	var rerr *RenderError
	require.True(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, "partial output", rerr.Output)
}

func TestRender_CallerDeadlineReportedAsInterrupted(t *testing.T) {
	exec := &mockExecutor{runFunc: func(ctx context.Context, dir, _ string, args []string) ([]byte, error) {
		<-ctx.Done()
		stem := strings.TrimSuffix(args[0], ".tex")
		_ = os.WriteFile(filepath.Join(dir, stem+".pdf"), []byte("partial"), 0o644)
		return nil, ctx.Err()
	}}
	r := newTestRenderer(t, exec, nil)
	r.Timeout = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Render(ctx, "text")

	var rerr *RenderError
	require.True(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "interrupted")
	assert.NotContains(t, err.Error(), "timed out after")
}

func TestRender_CallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exec := &mockExecutor{runFunc: func(_ context.Context, dir, _ string, args []string) ([]byte, error) {
		cancel()
		return writesPDF("", nil)(ctx, dir, "", args)
	}}
	r := newTestRenderer(t, exec, nil)

	_, err := r.Render(ctx, "text")

	var rerr *RenderError
	require.True(t, errors.As(err, &rerr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_RecorderFailureDoesNotFailRender(t *testing.T) {
	exec := &mockExecutor{runFunc: writesPDF("", nil)}
	r := newTestRenderer(t, exec, &fakeRecorder{err: errors.New("disk full")})

	_, err := r.Render(context.Background(), "text")
	require.NoError(t, err)
}

func TestRender_CollisionGetsSuffix(t *testing.T) {
	exec := &mockExecutor{runFunc: writesPDF("", nil)}
	r := newTestRenderer(t, exec, nil)

	first, err := r.Render(context.Background(), "one")
	require.NoError(t, err)
	second, err := r.Render(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, "paper_20260314_150926.pdf", filepath.Base(first.PDFPath))
	assert.Equal(t, "paper_20260314_150926_2.pdf", filepath.Base(second.PDFPath))
}

func TestUniqueStem(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "paper_20260314_150926", uniqueStem(dir, fixedNow))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper_20260314_150926.pdf"), nil, 0o644))
	assert.Equal(t, "paper_20260314_150926_2", uniqueStem(dir, fixedNow))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper_20260314_150926_2.tex"), nil, 0o644))
	assert.Equal(t, "paper_20260314_150926_3", uniqueStem(dir, fixedNow))
}

func TestNew_Defaults(t *testing.T) {
	r, err := New(types.RenderConfig{}, nil, nil)
	require.NoError(t, err)

	want, err := DefaultEnginePath()
	require.NoError(t, err)
	assert.Equal(t, want, r.EnginePath)
	assert.Equal(t, DefaultOutputDir, r.OutputDir)
	assert.Equal(t, DefaultTimeout, r.Timeout)
	assert.True(t, strings.HasPrefix(filepath.Base(want), "tectonic"))
}

// writeEngine creates a shell script standing in for the typesetting engine.
func writeEngine(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engine requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "tectonic")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRender_RealProcess(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr bool
	}{
		{
			name:   "engine writes PDF",
			script: `echo "compiling $1"; touch "$3/$(basename "$1" .tex).pdf"`,
		},
		{
			name:   "engine writes PDF and exits non-zero",
			script: `touch "$3/$(basename "$1" .tex).pdf"; echo warning >&2; exit 3`,
		},
		{
			name:    "engine exits zero without PDF",
			script:  `echo "nothing to do"`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := writeEngine(t, tt.script)
			r, err := New(types.RenderConfig{
				OutputDir:  filepath.Join(t.TempDir(), "out"),
				EnginePath: engine,
				Timeout:    10 * time.Second,
			}, nil, nil)
			require.NoError(t, err)

			res, err := r.Render(context.Background(), "Hello")
			if tt.wantErr {
				var rerr *RenderError
				require.True(t, errors.As(err, &rerr), "want RenderError, got %v", err)
				assert.Contains(t, rerr.Output, "nothing to do")
				return
			}
			require.NoError(t, err)
			assert.FileExists(t, res.PDFPath)
		})
	}
}
