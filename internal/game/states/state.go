// Package states implements demo state management.
package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/engine/input"
)

// State is one phase of the demo: loading, or rendering a terrain scene.
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt float32) error

	// Render is called every frame with the seconds since start.
	Render(time float32) error

	// HandleInput processes one input event.
	HandleInput(event input.Event) error
}

// Manager manages state transitions. Changes are applied at the start of
// the next Update so a state never exits in the middle of its own frame.
type Manager struct {
	current State
	next    State
	log     *zap.Logger
}

// NewManager creates a new state manager.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change.
func (m *Manager) Change(next State) {
	m.next = next
}

// Pending reports whether a change is scheduled.
func (m *Manager) Pending() bool {
	return m.next != nil
}

// Update processes state changes and updates the current state.
func (m *Manager) Update(dt float32) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return fmt.Errorf("exit %s: %w", m.current.Name(), err)
			}
		}
		m.log.Info("state change", zap.String("to", m.next.Name()))
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return fmt.Errorf("enter %s: %w", m.current.Name(), err)
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render(time float32) error {
	if m.current != nil {
		return m.current.Render(time)
	}
	return nil
}

// HandleInput forwards an event to the current state.
func (m *Manager) HandleInput(event input.Event) error {
	if m.current != nil {
		return m.current.HandleInput(event)
	}
	return nil
}

// Close exits the current state.
func (m *Manager) Close() error {
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	m.next = nil
	return err
}
