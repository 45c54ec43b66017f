package explang

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// Member access is compiled once over fixed variable names.
// Template identifiers are passed as data, never as CEL source, so names
// like "package" or "null" stay valid properties.
const (
	rootVariable = "root"
	keyVariable  = "key"
	memberSource = rootVariable + "[" + keyVariable + "]"
)

var memberProgram = sync.OnceValues(func() (cel.Program, error) {
	env, err := cel.NewEnv(
		cel.Variable(rootVariable, cel.DynType),
		cel.Variable(keyVariable, cel.StringType),
		cel.EagerlyValidateDeclarations(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(memberSource)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compilation error: %w", issues.Err())
	}

	return env.Program(ast)
})

// Member returns the named property of value.
// Structs are read through their yaml form, so the yaml tag, the json tag or
// the lowercased field name selects a field.
func Member(value any, name string) (any, bool) {
	program, err := memberProgram()
	if err != nil {
		return nil, false
	}

	// "no such key" and "no such overload" both surface as err.
	result, _, err := program.Eval(map[string]any{
		rootVariable: Normalize(value),
		keyVariable:  name,
	})
	if err != nil {
		return nil, false
	}

	return Native(result), true
}

// List converts an iterable value into its items. The second result is false
// when value is not a list.
func List(value any) ([]any, bool) {
	lister, ok := types.DefaultTypeAdapter.NativeToValue(Normalize(value)).(traits.Lister)
	if !ok {
		return nil, false
	}

	items := []any{}
	for it := lister.Iterator(); it.HasNext() == types.True; {
		items = append(items, Native(it.Next()))
	}

	return items, true
}

// Native unwraps a CEL value. null becomes nil.
func Native(val ref.Val) any {
	if val == nil || val.Type() == types.NullType {
		return nil
	}

	return val.Value()
}

// Normalize converts values the CEL adapter cannot read (structs, pointers,
// custom types) into plain maps and lists by a yaml round trip.
func Normalize(value any) any {
	if isPlain(value) {
		return value
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return value
	}

	var plain any
	if err := yaml.Unmarshal(data, &plain); err != nil {
		return value
	}

	return plain
}

func isPlain(value any) bool {
	switch v := value.(type) {
	case nil, bool, string, []byte,
		int, int32, int64, uint, uint32, uint64, float32, float64,
		time.Time, []string, map[string]string:
		return true
	case []any:
		for _, item := range v {
			if !isPlain(item) {
				return false
			}
		}

		return true
	case map[string]any:
		for _, item := range v {
			if !isPlain(item) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
