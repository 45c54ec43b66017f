package explang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/snaptmpl/filepos"
)

// ErrInvalidExpression indicates that a variable path could not be parsed.
var ErrInvalidExpression = errors.New("explang: invalid expression")

// MaxDepth is the number of segments a path may have: name or name.property.
const MaxDepth = 2

// ParseSteps splits a dotted variable path into steps.
// start is the position of the first rune of expr inside the template so
// each step carries an accurate span.
func ParseSteps(expr string, start filepos.Position) (Steps, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty path at %s", ErrInvalidExpression, start)
	}

	segments := strings.Split(expr, ".")
	if len(segments) > MaxDepth {
		return nil, fmt.Errorf("%w: '%s' has %d segments, at most %d are supported at %s", ErrInvalidExpression, expr, len(segments), MaxDepth, start)
	}

	steps := make(Steps, 0, len(segments))
	cursor := start.Copy()

	for i, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in '%s' at %s", ErrInvalidExpression, expr, cursor)
		}

		kind := StepMember
		if i == 0 {
			kind = StepIdentifier
		}

		segStart := cursor.Copy()
		for _, ch := range segment {
			cursor.Advance(ch)
		}

		steps = append(steps, Step{Kind: kind, Name: segment, Start: segStart, End: cursor.Copy()})

		cursor.Advance('.')
	}

	return steps, nil
}
