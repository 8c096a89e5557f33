package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/careerpath/roadmappdf/internal/model"
)

// File stores one JSON document per role in a directory. Toggles are
// serialized within the process; separate processes sharing a directory
// can still race.
type File struct {
	dir string
	mu  sync.Mutex
}

type fileRecord struct {
	Role      string    `json:"role"`
	Skills    []string  `json:"skills"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFile creates dir if needed and returns a store rooted there.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("progress: file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create progress directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(role string) string {
	return filepath.Join(f.dir, url.PathEscape(Key(role))+".json")
}

func (f *File) Load(_ context.Context, role string) (model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(role))
	if errors.Is(err, os.ErrNotExist) {
		return model.NewProgressState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read progress: %w", err)
	}
	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode progress for %q: %w", role, err)
	}
	return model.NewProgressState(rec.Skills...), nil
}

// Save writes through a temporary file so readers never see a torn write.
func (f *File) Save(_ context.Context, role string, state model.ProgressState) error {
	if err := checkRole(role); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileRecord{
		Role:      role,
		Skills:    state.Skills(),
		UpdatedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, ".progress-*")
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(role)); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (f *File) ToggleSkill(ctx context.Context, role, skill string) (bool, model.ProgressState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, err := f.Load(ctx, role)
	if err != nil {
		return false, nil, err
	}
	done := state.Toggle(skill)
	if err := f.Save(ctx, role, state); err != nil {
		return false, nil, err
	}
	return done, state, nil
}

func (f *File) Close() error { return nil }
