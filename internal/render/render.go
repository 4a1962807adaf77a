// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render compiles LaTeX markup into a PDF with an external
// typesetting engine (Tectonic). The markup is sanitized first; success is
// judged solely by the presence of the expected PDF, never by exit status,
// because the engine exits non-zero on warnings.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/latex"
	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	// DefaultOutputDir is relative to the process working directory.
	DefaultOutputDir = "pdf_outputs"
	// DefaultTimeout bounds a single engine run.
	DefaultTimeout = 2 * time.Minute

	stampLayout = "20060102_150405"
	filePrefix  = "paper_"
)

// RenderError reports a typesetting run that did not produce the expected
// PDF. Output carries the engine's combined stdout and stderr.
type RenderError struct {
	TexPath string
	Output  string
	Err     error
}

func (e *RenderError) Error() string {
	msg := "PDF generation failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Output != "" {
		msg += "\nEngine output:\n" + e.Output
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }

// Recorder stores the outcome of each render attempt.
type Recorder interface {
	Record(ctx context.Context, rec types.RenderRecord) error
}

// Renderer writes sanitized markup to a timestamped .tex file and runs the
// engine on it.
type Renderer struct {
	OutputDir  string
	EnginePath string
	Timeout    time.Duration
	Recorder   Recorder
	Logger     *zap.Logger

	exec executor
	now  func() time.Time
}

// New builds a Renderer from config. Empty fields take their defaults; the
// engine defaults to DefaultEnginePath. rec may be nil.
func New(cfg types.RenderConfig, rec Recorder, logger *zap.Logger) (*Renderer, error) {
	engine := cfg.EnginePath
	if engine == "" {
		p, err := DefaultEnginePath()
		if err != nil {
			return nil, err
		}
		engine = p
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = DefaultOutputDir
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Renderer{
		OutputDir:  outDir,
		EnginePath: engine,
		Timeout:    timeout,
		Recorder:   rec,
		Logger:     logging.OrNop(logger),
		exec:       defaultExec,
		now:        time.Now,
	}, nil
}

// DefaultEnginePath returns the Tectonic binary under the user's home
// directory.
func DefaultEnginePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	name := "tectonic"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(home, name), nil
}

// Render sanitizes markup, compiles it, and returns the absolute paths of
// the source and the generated PDF. A run that leaves no PDF behind returns
// *RenderError, whatever the engine's exit status.
func (r *Renderer) Render(ctx context.Context, markup string) (types.RenderResult, error) {
	log := logging.OrNop(r.Logger)

	outDir, err := filepath.Abs(r.outputDir())
	if err != nil {
		return types.RenderResult{}, fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return types.RenderResult{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	stem := uniqueStem(outDir, r.clock()())
	texName := stem + ".tex"
	texPath := filepath.Join(outDir, texName)
	pdfPath := filepath.Join(outDir, stem+".pdf")

	if err := os.WriteFile(texPath, []byte(latex.Sanitize(markup)), 0o644); err != nil {
		return types.RenderResult{}, fmt.Errorf("writing %s: %w", texPath, err)
	}

	output, runErr := r.compile(ctx, outDir, texName)

	interrupted := errors.Is(runErr, context.DeadlineExceeded) || errors.Is(runErr, context.Canceled)
	if !interrupted && exists(pdfPath) {
		if runErr != nil {
			log.Warn("engine exited with error but produced a PDF",
				zap.String("pdf", pdfPath), zap.Error(runErr))
		}
		log.Info("PDF generated", zap.String("pdf", pdfPath))
		r.record(ctx, log, types.RenderRecord{
			TexPath: texPath,
			PDFPath: pdfPath,
			Status:  types.RenderSucceeded,
			Output:  output,
		})
		return types.RenderResult{TexPath: texPath, PDFPath: pdfPath}, nil
	}

	rerr := &RenderError{TexPath: texPath, Output: output, Err: runErr}
	log.Error("PDF generation failed", zap.String("tex", texPath), zap.Error(rerr))
	r.record(ctx, log, types.RenderRecord{
		TexPath: texPath,
		Status:  types.RenderFailed,
		Output:  rerr.Error(),
	})
	return types.RenderResult{}, rerr
}

// compile runs the engine in outDir with a bounded timeout.
func (r *Renderer) compile(ctx context.Context, outDir, texName string) (string, error) {
	ex := r.exec
	if ex == nil {
		ex = defaultExec
	}

	engine, err := ex.LookPath(r.EnginePath)
	if err != nil {
		return "", fmt.Errorf("typesetting engine not available at %s: %w", r.EnginePath, err)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := ex.CombinedOutput(runCtx, outDir, engine, texName, "--outdir", outDir)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return string(out), fmt.Errorf("typesetting interrupted: %w", ctxErr)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return string(out), fmt.Errorf("typesetting timed out after %s: %w", timeout, context.DeadlineExceeded)
	}
	return string(out), err
}

func (r *Renderer) record(ctx context.Context, log *zap.Logger, rec types.RenderRecord) {
	if r.Recorder == nil {
		return
	}
	rec.CreatedAt = r.clock()().UTC()
	if err := r.Recorder.Record(ctx, rec); err != nil {
		log.Warn("recording render failed", zap.Error(err))
	}
}

func (r *Renderer) outputDir() string {
	if r.OutputDir == "" {
		return DefaultOutputDir
	}
	return r.OutputDir
}

func (r *Renderer) clock() func() time.Time {
	if r.now == nil {
		return time.Now
	}
	return r.now
}

// uniqueStem returns paper_<YYYYMMDD_HHMMSS>, adding _2, _3, ... when a
// source or PDF with that stem already exists in dir.
func uniqueStem(dir string, t time.Time) string {
	base := filePrefix + t.Format(stampLayout)
	stem := base
	for n := 2; exists(filepath.Join(dir, stem+".tex")) || exists(filepath.Join(dir, stem+".pdf")); n++ {
		stem = base + "_" + strconv.Itoa(n)
	}
	return stem
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
