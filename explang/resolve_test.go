package explang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shibukawa/snaptmpl/filepos"
)

type profile struct {
	Name    string `yaml:"name"`
	Email   string `json:"mail,omitempty"`
	Age     int
	private string
}

func mustSteps(t *testing.T, expr string) Steps {
	t.Helper()

	steps, err := ParseSteps(expr, filepos.New(expr, ""))
	require.NoError(t, err)

	return steps
}

func TestResolve(t *testing.T) {
	roots := map[string]any{
		"user":    map[string]any{"name": "Alice", "tags": []any{"a"}, "package": "core", "manager": nil},
		"profile": &profile{Name: "Bob", Email: "bob@example.com", Age: 30, private: "x"},
		"labels":  map[string]string{"env": "prod"},
		"count":   3,
	}

	lookup := func(name string) (any, bool) {
		v, ok := roots[name]
		return v, ok
	}

	tests := []struct {
		name      string
		expr      string
		want      any
		wantStep  int
		wantError string
	}{
		{name: "root", expr: "count", want: 3},
		{name: "map member", expr: "user.name", want: "Alice"},
		{name: "typed map member", expr: "labels.env", want: "prod"},
		{name: "struct yaml tag", expr: "profile.name", want: "Bob"},
		{name: "struct json tag", expr: "profile.mail", want: "bob@example.com"},
		{name: "struct field name", expr: "profile.age", want: uint64(30)},
		{name: "reserved word member", expr: "user.package", want: "core"},
		{name: "nested list", expr: "user.tags", want: []any{"a"}},
		{name: "null member", expr: "user.manager", want: nil},
		{name: "unexported field", expr: "profile.private", wantStep: 1, wantError: "'profile' has no property 'private'"},
		{name: "unknown root", expr: "missing", wantStep: 0, wantError: "'missing' is not defined"},
		{name: "go field name", expr: "profile.Age", wantStep: 1, wantError: "'profile' has no property 'Age'"},
		{name: "unknown member", expr: "user.age", wantStep: 1, wantError: "'user' has no property 'age'"},
		{name: "member of scalar", expr: "count.x", wantStep: 1, wantError: "'count' has no property 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(mustSteps(t, tt.expr), lookup)
			if tt.wantError != "" {
				var resolveErr *ResolveError
				require.ErrorAs(t, err, &resolveErr)
				assert.Equal(t, tt.wantStep, resolveErr.StepIndex)
				assert.Equal(t, tt.wantError, resolveErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemberNilPointer(t *testing.T) {
	var p *profile

	_, ok := Member(p, "name")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   []any
		wantOK bool
	}{
		{name: "any list", value: []any{"a", true}, want: []any{"a", true}, wantOK: true},
		{name: "string list", value: []string{"x", "y"}, want: []any{"x", "y"}, wantOK: true},
		{name: "empty list", value: []any{}, want: []any{}, wantOK: true},
		{name: "null item", value: []any{nil}, want: []any{nil}, wantOK: true},
		{name: "struct items", value: []profile{{Name: "Bob", Age: 7}}, want: []any{map[string]any{"name": "Bob", "age": uint64(7)}}, wantOK: true},
		{name: "string", value: "abc"},
		{name: "map", value: map[string]any{"a": 1}},
		{name: "nil", value: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := List(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
