// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by tools that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the paper search tool.
type SearchConfig struct {
	// Endpoint is the arXiv query endpoint.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// MaxResults is the number of entries requested when the caller does not
	// specify one (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ReaderConfig holds settings for the PDF reader tool.
type ReaderConfig struct {
	// MaxBytes caps the size of a fetched document. Zero disables the cap.
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`
}

// RenderConfig holds settings for the LaTeX renderer tool.
type RenderConfig struct {
	// OutputDir receives generated .tex and .pdf files (default "pdf_outputs").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// EnginePath is the typesetting executable (default ~/tectonic).
	EnginePath string `json:"engine_path" yaml:"engine_path" mapstructure:"engine_path"`

	// Timeout bounds a single engine invocation (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// Ledger is the SQLite database recording render attempts. Empty
	// disables the ledger.
	Ledger string `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}

// Config groups all tool configurations.
type Config struct {
	HTTP   HTTPConfig   `json:"http" yaml:"http" mapstructure:"http"`
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Reader ReaderConfig `json:"reader" yaml:"reader" mapstructure:"reader"`
	Render RenderConfig `json:"render" yaml:"render" mapstructure:"render"`
}
