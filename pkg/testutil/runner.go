package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of a subprocess runner
type MockRunner struct {
	mock.Mock
}

// Run records the program and its arguments
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	callArgs := m.Called(name, args)
	return callArgs.Error(0)
}

// Command is a recorded subprocess invocation
type Command struct {
	Name string
	Args []string
}

// RecordingRunner records commands without running them
type RecordingRunner struct {
	mu       sync.Mutex
	commands []Command
	Err      error
}

// Run records the command
func (r *RecordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, Command{Name: name, Args: append([]string(nil), args...)})
	return r.Err
}

// Commands returns the recorded commands in call order
func (r *RecordingRunner) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}
