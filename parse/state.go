package parse

// State is the cursor over the arguments of one command level
type State interface {
	CurrentArg() string   // Get the current argument
	Peek() string         // Peek at the next argument
	HasNext() bool        // Reports whether an argument follows the current one
	Advance() bool        // Advance to the next argument
	Rest() []string       // Arguments after the current position
	PositionalOnly() bool // Reports whether the terminator has been seen
	SetPositionalOnly()   // Switches the remaining arguments to positional-only mode
}

// DefaultState is the default implementation of the State interface
type DefaultState struct {
	pos            int
	args           []string
	positionalOnly bool
}

// NewState creates a new State instance positioned before the first argument
func NewState(args []string) State {
	return &DefaultState{
		pos:  -1,
		args: args,
	}
}

// CurrentArg returns the current argument
func (s *DefaultState) CurrentArg() string {
	if s.pos < 0 || s.pos >= len(s.args) {
		return ""
	}
	return s.args[s.pos]
}

// Advance advances to the next argument, returning true if successful
func (s *DefaultState) Advance() bool {
	if s.pos+1 < len(s.args) {
		s.pos++
		return true
	}
	return false
}

// HasNext reports whether an argument follows the current position
func (s *DefaultState) HasNext() bool {
	return s.pos+1 < len(s.args)
}

// Peek returns the next argument without advancing the current position
func (s *DefaultState) Peek() string {
	if s.pos+1 < len(s.args) {
		return s.args[s.pos+1]
	}

	return ""
}

// Rest returns the arguments following the current position
func (s *DefaultState) Rest() []string {
	if s.pos+1 >= len(s.args) {
		return nil
	}
	return s.args[s.pos+1:]
}

// PositionalOnly reports whether the terminator has been seen
func (s *DefaultState) PositionalOnly() bool {
	return s.positionalOnly
}

// SetPositionalOnly switches the remaining arguments to positional-only mode
func (s *DefaultState) SetPositionalOnly() {
	s.positionalOnly = true
}
