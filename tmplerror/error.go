// Package tmplerror defines the single error type shared by the tokenizer,
// parser and interpreter.
//
// Every failure carries a Kind, a human readable detail and the source span it
// was raised for. Kinds map onto sentinel errors so callers can use errors.Is
// without depending on the concrete type.
package tmplerror

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/shibukawa/snaptmpl/filepos"
)

// Kind is the error category.
type Kind int

const (
	// Lexical
	IllegalCharacter Kind = iota
	ExpectedDelimiter

	// Syntax
	InvalidSyntax
	ExpectedCharacter
	MissingLoopClose
	MissingIfClose

	// Evaluation
	UnknownNodeType
	UnknownVariable
	UnknownProperty
	NotIterable
	ScopeConflict
)

// Phase groups kinds by the pipeline stage that raises them.
type Phase int

const (
	PhaseLexical Phase = iota
	PhaseSyntax
	PhaseEvaluation
)

// Sentinel errors, one per Kind.
var (
	ErrIllegalCharacter  = errors.New("illegal character")
	ErrExpectedDelimiter = errors.New("expected closing delimiter")
	ErrInvalidSyntax     = errors.New("invalid syntax")
	ErrExpectedCharacter = errors.New("expected character")
	ErrMissingLoopClose  = errors.New("missing for closing")
	ErrMissingIfClose    = errors.New("missing if closing")
	ErrUnknownNodeType   = errors.New("unknown node type")
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrUnknownProperty   = errors.New("unknown property")
	ErrNotIterable       = errors.New("value is not iterable")
	ErrScopeConflict     = errors.New("scoped name conflicts with global")
)

var kindInfo = map[Kind]struct {
	name     string
	phase    Phase
	sentinel error
}{
	IllegalCharacter:  {"Illegal Character", PhaseLexical, ErrIllegalCharacter},
	ExpectedDelimiter: {"Expected Delimiter", PhaseLexical, ErrExpectedDelimiter},
	InvalidSyntax:     {"Invalid Syntax", PhaseSyntax, ErrInvalidSyntax},
	ExpectedCharacter: {"Expected Character", PhaseSyntax, ErrExpectedCharacter},
	MissingLoopClose:  {"Missing for closing", PhaseSyntax, ErrMissingLoopClose},
	MissingIfClose:    {"Missing if closing", PhaseSyntax, ErrMissingIfClose},
	UnknownNodeType:   {"Unknown node type", PhaseEvaluation, ErrUnknownNodeType},
	UnknownVariable:   {"Unknown variable", PhaseEvaluation, ErrUnknownVariable},
	UnknownProperty:   {"Unknown property", PhaseEvaluation, ErrUnknownProperty},
	NotIterable:       {"Not iterable", PhaseEvaluation, ErrNotIterable},
	ScopeConflict:     {"Scope conflict", PhaseEvaluation, ErrScopeConflict},
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}

	return "Unknown error"
}

// Phase returns the pipeline stage the kind belongs to.
func (k Kind) Phase() Phase {
	return kindInfo[k].phase
}

func (p Phase) String() string {
	switch p {
	case PhaseLexical:
		return "lexical"
	case PhaseSyntax:
		return "syntax"
	case PhaseEvaluation:
		return "evaluation"
	default:
		return "unknown"
	}
}

// Error is a template error with its source span.
type Error struct {
	Kind   Kind
	Detail string
	Start  filepos.Position
	End    filepos.Position
}

// New creates an error spanning start to end.
func New(kind Kind, start, end filepos.Position, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
		Start:  start,
		End:    end,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Start.String(), e.Kind, e.Detail)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *Error) Unwrap() error {
	return kindInfo[e.Kind].sentinel
}

// DetailedError returns the error with the offending source line and a caret
// under the failing column.
func (e *Error) DetailedError() string {
	header, line, caret := e.parts()

	var builder strings.Builder

	builder.WriteString(header)
	builder.WriteString("\n")

	if line != "" || e.Start.IsKnown() {
		builder.WriteString("\n")
		builder.WriteString(line)
		builder.WriteString("\n")
		builder.WriteString(caret)
		builder.WriteString("\n")
	}

	return builder.String()
}

// Parts splits the detailed rendering so front ends can style each piece.
func (e *Error) Parts() (header, sourceLine, caret string) {
	return e.parts()
}

func (e *Error) parts() (string, string, string) {
	header := fmt.Sprintf("%s error: %s\n  at %s", e.Kind.Phase(), e.Kind, e.Start.String())
	line := e.Start.SourceLine()

	return header, line, CaretLine(line, e.Start.Col) + " " + e.Detail
}

// CaretLine returns padding that lines up under column col of line, followed by '^'.
// Tabs are kept so the caret follows the source's own tab stops; wide runes take two cells.
func CaretLine(line string, col int) string {
	var builder strings.Builder

	i := 0
	for _, r := range line {
		if i >= col {
			break
		}

		switch {
		case r == '\t':
			builder.WriteByte('\t')
		case isWide(r):
			builder.WriteString("  ")
		default:
			builder.WriteByte(' ')
		}

		i++
	}

	for ; i < col; i++ {
		builder.WriteByte(' ')
	}

	builder.WriteByte('^')

	return builder.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr, true
	}

	return nil, false
}
