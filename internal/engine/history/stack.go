package history

import (
	"time"

	"github.com/dshills/inkwell/internal/engine/editbuffer"
)

// entry wraps a command with execution metadata.
type entry struct {
	command   Command
	timestamp time.Time
}

// Stack manages undo/redo state. New commands clear the redo stack
// (branch-discard semantics); undo and redo on empty stacks are no-ops.
type Stack struct {
	undo []*entry
	redo []*entry

	maxEntries int
}

// NewStack creates an undo/redo stack holding at most maxEntries commands.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Stack{maxEntries: maxEntries}
}

// Execute runs a command and records it on the undo stack.
func (s *Stack) Execute(cmd Command, buf *editbuffer.Buffer) error {
	if err := cmd.Execute(buf); err != nil {
		return err
	}
	s.Push(cmd)
	return nil
}

// Push records an already-executed command. The redo stack is discarded.
func (s *Stack) Push(cmd Command) {
	s.undo = append(s.undo, &entry{command: cmd, timestamp: time.Now()})
	s.redo = nil

	if len(s.undo) > s.maxEntries {
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:len(s.undo)-1]
	}
}

// Undo pops and inverts the most recent command. Returns the command so the
// caller can restore its pre-execution selection, or nil if the stack is
// empty.
func (s *Stack) Undo(buf *editbuffer.Buffer) (Command, error) {
	if len(s.undo) == 0 {
		return nil, nil
	}
	e := s.undo[len(s.undo)-1]
	if err := e.command.Undo(buf); err != nil {
		return nil, err
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, e)
	return e.command, nil
}

// Redo re-applies the most recently undone command, or returns nil if there
// is nothing to redo.
func (s *Stack) Redo(buf *editbuffer.Buffer) (Command, error) {
	if len(s.redo) == 0 {
		return nil, nil
	}
	e := s.redo[len(s.redo)-1]
	if err := e.command.Execute(buf); err != nil {
		return nil, err
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, e)
	return e.command, nil
}

// CanUndo reports whether an undo is available.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo is available.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Depth returns the number of undoable commands.
func (s *Stack) Depth() int { return len(s.undo) }

// Clear empties both stacks. Safe on an already-empty stack.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}
