// Package assets implements the local-directory asset store backing the
// public /assets endpoint.
package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Canonical asset filenames produced for every completed job.
const (
	ModelFilename     = "model.glb"
	TextureFilename   = "texture.jpg"
	AnimationFilename = "animations.json"
)

// Config holds asset store settings.
type Config struct {
	// Dir is the root directory assets are written under, one
	// subdirectory per job.
	Dir string
	// BaseURL is the public URL prefix the service is reachable at,
	// without a trailing slash.
	BaseURL string
}

// Store writes generated assets to the local filesystem and resolves them
// back for serving. Retention and eviction are an operational concern
// handled outside the service.
type Store struct {
	dir     string
	baseURL string
	logger  *slog.Logger
}

// NewStore creates the root directory if needed and returns a store.
func NewStore(cfg *Config, logger *slog.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("asset directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}

	return &Store{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// Published is the set of addressable locations for one job's assets.
type Published struct {
	ModelURL      string
	TextureURL    string
	AnimationData string
}

// Publish writes the job's asset files and returns their public URLs.
// The file contents are placeholders until the export stages produce real
// artifacts; the locations and serving path are the real contract.
func (s *Store) Publish(jobID string, animationJSON []byte) (Published, error) {
	jobDir := filepath.Join(s.dir, jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return Published{}, fmt.Errorf("failed to create job asset directory: %w", err)
	}

	files := map[string][]byte{
		ModelFilename:     []byte("glTF placeholder for job " + jobID),
		TextureFilename:   []byte("texture placeholder for job " + jobID),
		AnimationFilename: animationJSON,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(jobDir, name), data, 0o644); err != nil {
			return Published{}, fmt.Errorf("failed to write asset %s: %w", name, err)
		}
	}

	s.logger.Debug("Assets published",
		slog.String("job_id", jobID),
		slog.Int("file_count", len(files)),
	)

	return Published{
		ModelURL:      s.url(jobID, ModelFilename),
		TextureURL:    s.url(jobID, TextureFilename),
		AnimationData: s.url(jobID, AnimationFilename),
	}, nil
}

// Path resolves an asset file for serving. It rejects names that would
// escape the job's directory and reports whether the file exists.
func (s *Store) Path(jobID, filename string) (string, error) {
	if jobID == "" || filename == "" {
		return "", os.ErrNotExist
	}
	if strings.ContainsAny(jobID, `/\`) || filepath.Base(filename) != filename {
		return "", os.ErrNotExist
	}

	path := filepath.Join(s.dir, jobID, filename)
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return path, nil
}

func (s *Store) url(jobID, filename string) string {
	return fmt.Sprintf("%s/assets/%s/%s", s.baseURL, jobID, filename)
}
