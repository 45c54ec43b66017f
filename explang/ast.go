package explang

import (
	"strings"

	"github.com/shibukawa/snaptmpl/filepos"
)

// StepKind indicates what kind of explang step is described.
type StepKind int

const (
	StepIdentifier StepKind = iota
	StepMember
)

func (k StepKind) String() string {
	if k == StepMember {
		return "member"
	}

	return "identifier"
}

// Step represents one segment of a variable path.
// Start and End span the segment inside the template source.
type Step struct {
	Kind  StepKind
	Name  string
	Start filepos.Position
	End   filepos.Position
}

// Steps is a parsed path: a root identifier optionally followed by one member access.
type Steps []Step

// Root returns the root identifier name.
func (s Steps) Root() string {
	if len(s) == 0 {
		return ""
	}

	return s[0].Name
}

// Property returns the member name if the path has one.
func (s Steps) Property() (string, bool) {
	if len(s) < 2 {
		return "", false
	}

	return s[1].Name, true
}

// String joins the path back with dots.
func (s Steps) String() string {
	names := make([]string, len(s))
	for i, step := range s {
		names[i] = step.Name
	}

	return strings.Join(names, ".")
}
