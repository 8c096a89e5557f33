// Package progress persists which missing skills a user has completed,
// keyed by role, so a roadmap can be re-exported across sessions.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/careerpath/roadmappdf/internal/model"
)

// KeyPrefix namespaces progress keys in shared stores.
const KeyPrefix = "roadmap_progress:"

// ErrInvalidRole is returned for a blank role identifier.
var ErrInvalidRole = errors.New("progress: role must not be empty")

// Store loads and saves progress per role. A role with no saved progress
// loads as an empty state.
type Store interface {
	Load(ctx context.Context, role string) (model.ProgressState, error)
	Save(ctx context.Context, role string, state model.ProgressState) error
	Close() error
}

// Key returns the storage key for role.
func Key(role string) string {
	return KeyPrefix + role
}

func checkRole(role string) error {
	if strings.TrimSpace(role) == "" {
		return ErrInvalidRole
	}
	return nil
}

// Toggler is implemented by stores that can flip one skill atomically.
type Toggler interface {
	ToggleSkill(ctx context.Context, role, skill string) (bool, model.ProgressState, error)
}

// Toggle flips skill for role and persists the result. It returns whether
// the skill is now complete and the updated state. Stores implementing
// Toggler do this atomically; for others it is a plain load and save.
func Toggle(ctx context.Context, s Store, role, skill string) (bool, model.ProgressState, error) {
	if t, ok := s.(Toggler); ok {
		return t.ToggleSkill(ctx, role, skill)
	}
	state, err := s.Load(ctx, role)
	if err != nil {
		return false, nil, err
	}
	done := state.Toggle(skill)
	if err := s.Save(ctx, role, state); err != nil {
		return false, nil, err
	}
	return done, state, nil
}

// Options selects and configures a store implementation.
type Options struct {
	// Driver is one of memory, file, redis or postgres.
	Driver string

	Dir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string

	Logger *log.Logger
}

// Open returns the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(opts.Dir)
	case "redis":
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.Logger)
	case "postgres":
		return ConnectPostgres(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown progress driver %q", opts.Driver)
	}
}

func clone(p model.ProgressState) model.ProgressState {
	return model.NewProgressState(p.Skills()...)
}
