package explang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shibukawa/snaptmpl/filepos"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{
			name:  "single identifier",
			input: "user",
			want:  []string{"user"},
		},
		{
			name:  "member access",
			input: "user.name",
			want:  []string{"user", "name"},
		},
		{
			name:  "numeric literal",
			input: "42",
			want:  []string{"42"},
		},
		{
			name:    "too deep",
			input:   "a.b.c",
			wantErr: true,
		},
		{
			name:    "empty segment",
			input:   "a.",
			wantErr: true,
		},
		{
			name:    "leading dot",
			input:   ".a",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSteps(tt.input, filepos.New(tt.input, ""))
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidExpression))
				return
			}

			if !assert.NoError(t, err) {
				return
			}

			names := make([]string, len(got))
			for i, step := range got {
				names[i] = step.Name
			}

			assert.Equal(t, tt.want, names)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestParseSteps_Positions(t *testing.T) {
	text := "{{ a.bc }}"
	start := filepos.New(text, "")
	for _, ch := range "{{ " {
		start.Advance(ch)
	}

	steps, err := ParseSteps("a.bc", start)
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, StepIdentifier, steps[0].Kind)
	assert.Equal(t, 3, steps[0].Start.Col)
	assert.Equal(t, 4, steps[0].End.Col)

	assert.Equal(t, StepMember, steps[1].Kind)
	assert.Equal(t, 5, steps[1].Start.Col)
	assert.Equal(t, 7, steps[1].End.Col)

	assert.Equal(t, "a", steps.Root())
	prop, ok := steps.Property()
	assert.True(t, ok)
	assert.Equal(t, "bc", prop)
}
