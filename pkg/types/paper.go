// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RenderStatus indicates the outcome of a typesetting run.
type RenderStatus string

const (
	RenderSucceeded RenderStatus = "succeeded"
	RenderFailed    RenderStatus = "failed"
)

// RenderResult describes the files produced by one render request.
type RenderResult struct {
	// TexPath is the absolute path of the sanitized LaTeX source.
	TexPath string `json:"tex_path" yaml:"tex_path"`

	// PDFPath is the absolute path of the compiled document.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`
}

// RenderRecord is one row of the render ledger. Every attempt is recorded,
// including failed ones, so the captured engine output can be inspected later.
type RenderRecord struct {
	ID        int64        `json:"id" yaml:"id"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
	TexPath   string       `json:"tex_path" yaml:"tex_path"`
	PDFPath   string       `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
	Status    RenderStatus `json:"status" yaml:"status"`
	Output    string       `json:"output,omitempty" yaml:"output,omitempty"`
}
