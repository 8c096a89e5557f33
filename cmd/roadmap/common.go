package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/careerpath/roadmappdf/internal/config"
	"github.com/careerpath/roadmappdf/internal/model"
	"github.com/careerpath/roadmappdf/internal/pagination"
	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/careerpath/roadmappdf/pkg/api"
	"gopkg.in/yaml.v3"
)

func newLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// exporterFor builds an exporter from the document section of cfg.
func exporterFor(cfg *config.Config, logger *log.Logger) (*api.Exporter, error) {
	size, ok := pagination.PageSizeByName(cfg.Document.PageSize)
	if !ok {
		return nil, fmt.Errorf("unknown page size %q", cfg.Document.PageSize)
	}
	opts := []api.Option{
		api.WithPageSize(size.Width, size.Height),
		api.WithAuthor(cfg.Document.Author),
		api.WithSubject(cfg.Document.Subject),
		api.WithKeywords(cfg.Document.Keywords),
		api.WithCreator(cfg.Document.Creator),
		api.WithStrict(cfg.Document.Strict),
		api.WithDebug(cfg.Debug),
		api.WithLogger(logger),
	}
	if cfg.Document.Logo != "" {
		opts = append(opts, api.WithLogo(cfg.Document.Logo))
		if configPath != "" {
			opts = append(opts, api.WithResourcePath(filepath.Dir(configPath)))
		}
	}
	for role, hex := range cfg.Document.Palette {
		opts = append(opts, api.WithColor(role, hex))
	}
	return api.New(opts...), nil
}

// readRecord loads a role record from JSON or YAML, chosen by extension.
func readRecord(path string) (*model.RoleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file %s: %w", path, err)
	}
	var rec model.RoleRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &rec)
	default:
		err = json.Unmarshal(data, &rec)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse record file %s: %w", path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid record in %s: %w", path, err)
	}
	return &rec, nil
}

// resolveProgress returns the explicit completed list when given, otherwise
// the stored progress for the role when useStore is set.
func resolveProgress(ctx context.Context, cfg *config.Config, role string, completed []string, useStore bool, logger *log.Logger) (model.ProgressState, error) {
	if len(completed) > 0 || !useStore {
		return model.NewProgressState(completed...), nil
	}
	store, err := progress.Open(ctx, cfg.ProgressOptions(logger))
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx, role)
}
