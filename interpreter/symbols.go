package interpreter

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/shibukawa/snaptmpl/tmplerror"
)

// Frame holds the bindings of one scoped block.
type Frame struct {
	Owner uuid.UUID
	vars  map[string]any
}

// SymbolTable resolves names against per-block frames and the global context.
// Globals are fixed when the table is created.
type SymbolTable struct {
	global map[string]any
	frames []*Frame
	index  map[uuid.UUID]*Frame
}

// NewSymbolTable copies context into the global tier.
func NewSymbolTable(context map[string]any) *SymbolTable {
	global := make(map[string]any, len(context))
	maps.Copy(global, context)

	return &SymbolTable{
		global: global,
		index:  make(map[uuid.UUID]*Frame),
	}
}

// Push opens a frame owned by the node with the given id.
func (s *SymbolTable) Push(owner uuid.UUID) *Frame {
	frame := &Frame{Owner: owner, vars: make(map[string]any)}
	s.frames = append(s.frames, frame)
	s.index[owner] = frame

	return frame
}

// Pop closes the innermost frame.
func (s *SymbolTable) Pop() {
	if len(s.frames) == 0 {
		return
	}

	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	delete(s.index, frame.Owner)
}

// Depth returns the number of open frames.
func (s *SymbolTable) Depth() int {
	return len(s.frames)
}

// Declare adds name to the frame owned by owner.
// A name that already exists as a global cannot be declared.
func (s *SymbolTable) Declare(owner uuid.UUID, name string, value any) error {
	if _, exists := s.global[name]; exists {
		return fmt.Errorf("%w: '%s'", tmplerror.ErrScopeConflict, name)
	}

	frame, ok := s.index[owner]
	if !ok {
		return fmt.Errorf("%w: no open scope %s", ErrNoFrame, owner)
	}

	frame.vars[name] = value

	return nil
}

// Assign updates a name previously declared in the frame owned by owner.
func (s *SymbolTable) Assign(owner uuid.UUID, name string, value any) error {
	frame, ok := s.index[owner]
	if !ok {
		return fmt.Errorf("%w: no open scope %s", ErrNoFrame, owner)
	}

	if _, declared := frame.vars[name]; !declared {
		return fmt.Errorf("%w: '%s'", tmplerror.ErrUnknownVariable, name)
	}

	frame.vars[name] = value

	return nil
}

// Lookup walks scope from the innermost (last) id outwards and then falls back to globals.
func (s *SymbolTable) Lookup(scope []uuid.UUID, name string) (any, bool) {
	for i := len(scope) - 1; i >= 0; i-- {
		frame, ok := s.index[scope[i]]
		if !ok {
			continue
		}

		if value, found := frame.vars[name]; found {
			return value, true
		}
	}

	return s.Global(name)
}

// Global looks name up in the global tier only.
func (s *SymbolTable) Global(name string) (any, bool) {
	value, ok := s.global[name]
	return value, ok
}
