// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/artifacts"
	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/internal/reader"
	"github.com/pdiddy/research-assistant/internal/render"
	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/internal/tools"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const defaultUserAgent = "research-assistant/0.1"

// envKeyReplacer maps nested keys such as render.engine_path to
// RESEARCH_ASSISTANT_RENDER_ENGINE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// setDefaults registers the default value of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", httputil.DefaultTimeout)
	v.SetDefault("http.user_agent", defaultUserAgent)
	v.SetDefault("search.endpoint", search.DefaultEndpoint)
	v.SetDefault("search.max_results", search.DefaultMaxResults)
	v.SetDefault("reader.max_bytes", reader.DefaultMaxBytes)
	v.SetDefault("render.output_dir", render.DefaultOutputDir)
	v.SetDefault("render.engine_path", "")
	v.SetDefault("render.timeout", render.DefaultTimeout)
	v.SetDefault("render.ledger", filepath.Join(render.DefaultOutputDir, artifacts.DefaultLedgerFile))
}

// bindFlag lets a command flag override a configuration key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s to %s: %v", flag, key, err))
	}
}

// loadConfig decodes the merged configuration (defaults, file, env, flags).
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// newSearcher builds the arXiv client from cfg.
func newSearcher(cfg types.Config) *search.ArxivClient {
	return search.NewArxivClient(nil, cfg.HTTP, cfg.Search, logger)
}

// newReader builds the PDF reader from cfg.
func newReader(cfg types.Config) *reader.Reader {
	return reader.New(nil, nil, cfg.HTTP, cfg.Reader, logger)
}

// newRenderer builds the renderer and, when a ledger is configured, opens
// it. The returned close function is never nil.
func newRenderer(cfg types.Config) (*render.Renderer, func(), error) {
	closeFn := func() {}

	var rec render.Recorder
	if cfg.Render.Ledger != "" {
		store, err := artifacts.Open(cfg.Render.Ledger)
		if err != nil {
			return nil, closeFn, err
		}
		rec = store
		closeFn = func() { store.Close() }
	}

	r, err := render.New(cfg.Render, rec, logger)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return r, closeFn, nil
}

// newRegistry wires the three research tools.
func newRegistry(cfg types.Config) (*tools.Registry, func(), error) {
	rn, closeFn, err := newRenderer(cfg)
	if err != nil {
		return nil, closeFn, err
	}
	reg := tools.NewResearchRegistry(tools.Deps{
		Searcher:   newSearcher(cfg),
		Reader:     newReader(cfg),
		Renderer:   rn,
		MaxResults: cfg.Search.MaxResults,
	}, logger)
	return reg, closeFn, nil
}
