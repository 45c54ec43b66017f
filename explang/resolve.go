package explang

import "fmt"

// RootLookup resolves a root identifier.
type RootLookup func(name string) (any, bool)

// ResolveError reports the step a path failed at.
type ResolveError struct {
	StepIndex int
	Step      Step
	Message   string
}

func (e *ResolveError) Error() string {
	return e.Message
}

// Resolve walks steps starting from the value returned by root.
func Resolve(steps Steps, root RootLookup) (any, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidExpression)
	}

	var (
		current any
		path    string
	)

	for idx, step := range steps {
		switch step.Kind {
		case StepIdentifier:
			path = step.Name

			value, ok := root(step.Name)
			if !ok {
				return nil, &ResolveError{
					StepIndex: idx,
					Step:      step,
					Message:   fmt.Sprintf("'%s' is not defined", step.Name),
				}
			}

			current = value
		case StepMember:
			value, ok := Member(current, step.Name)
			if !ok {
				return nil, &ResolveError{
					StepIndex: idx,
					Step:      step,
					Message:   fmt.Sprintf("'%s' has no property '%s'", path, step.Name),
				}
			}

			path = path + "." + step.Name
			current = value
		}
	}

	return current, nil
}
