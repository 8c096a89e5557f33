package progress

import (
	"context"
	"sync"

	"github.com/careerpath/roadmappdf/internal/model"
)

// Memory keeps progress in process memory.
type Memory struct {
	mu    sync.RWMutex
	state map[string]model.ProgressState
}

func NewMemory() *Memory {
	return &Memory{state: make(map[string]model.ProgressState)}
}

func (m *Memory) Load(_ context.Context, role string) (model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.state[role]), nil
}

func (m *Memory) Save(_ context.Context, role string, state model.ProgressState) error {
	if err := checkRole(role); err != nil {
		return err
	}
	m.mu.Lock()
	m.state[role] = clone(state)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ToggleSkill(_ context.Context, role, skill string) (bool, model.ProgressState, error) {
	if err := checkRole(role); err != nil {
		return false, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	state := clone(m.state[role])
	done := state.Toggle(skill)
	m.state[role] = state
	return done, clone(state), nil
}

func (m *Memory) Close() error { return nil }
