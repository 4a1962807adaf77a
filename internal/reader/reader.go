// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader fetches a PDF over HTTP and extracts its plain text page by
// page. Text extraction sits behind the PageExtractor interface; the
// production extractor is backed by github.com/ledongthuc/pdf.
package reader

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultMaxBytes caps a fetched document when no limit is configured.
const DefaultMaxBytes int64 = 64 << 20

// PageExtractor splits a document into per-page plain text, in page order.
type PageExtractor interface {
	Pages(data []byte) ([]string, error)
}

// DocumentReadError reports any failure while fetching or parsing a remote
// document. It wraps the original cause.
type DocumentReadError struct {
	URL string
	Err error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("error reading PDF from %s: %v", e.URL, e.Err)
}

func (e *DocumentReadError) Unwrap() error { return e.Err }

// Reader fetches documents and returns their text.
type Reader struct {
	Client    *http.Client
	Extractor PageExtractor
	// MaxBytes caps the fetched body. Zero or negative disables the cap.
	MaxBytes  int64
	UserAgent string
	Logger    *zap.Logger
}

// New builds a Reader from config. A nil client gets the shared default
// timeout; a nil extractor gets the PDF library extractor.
func New(client *http.Client, extractor PageExtractor, httpCfg types.HTTPConfig, cfg types.ReaderConfig, logger *zap.Logger) *Reader {
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	if extractor == nil {
		extractor = PDFExtractor{}
	}
	return &Reader{
		Client:    client,
		Extractor: extractor,
		MaxBytes:  cfg.MaxBytes,
		UserAgent: httpCfg.UserAgent,
		Logger:    logging.OrNop(logger),
	}
}

// ReadPDF fetches url and returns the text of every page joined by newlines,
// trimmed. Every failure is returned as *DocumentReadError.
func (r *Reader) ReadPDF(ctx context.Context, url string) (string, error) {
	log := logging.OrNop(r.Logger)

	text, err := r.read(ctx, url, log)
	if err != nil {
		log.Error("reading PDF failed", zap.String("url", url), zap.Error(err))
		return "", &DocumentReadError{URL: url, Err: err}
	}
	log.Info("extracted text from PDF", zap.String("url", url), zap.Int("chars", len(text)))
	return text, nil
}

func (r *Reader) read(ctx context.Context, url string, log *zap.Logger) (string, error) {
	client := r.Client
	if client == nil {
		client = httputil.NewClient(0)
	}
	extractor := r.Extractor
	if extractor == nil {
		extractor = PDFExtractor{}
	}

	resp, err := httputil.Get(ctx, client, url, r.UserAgent)
	if err != nil {
		return "", fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := httputil.ReadAllLimited(resp.Body, r.MaxBytes)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	pages, err := extractor.Pages(data)
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var b strings.Builder
	for i, p := range pages {
		log.Debug("extracted page", zap.Int("page", i+1), zap.Int("pages", len(pages)))
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String()), nil
}
