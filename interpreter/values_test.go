package interpreter

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type (
	label   string
	celsius float64
)

func TestStringify(t *testing.T) {
	name := "ptr"

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"string", "abc", "abc"},
		{"string pointer", &name, "ptr"},
		{"nil string pointer", (*string)(nil), "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float", 2.50, "2.5"},
		{"float32", float32(0.1), "0.1"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "+Inf"},
		{"negative float32 infinity", float32(math.Inf(-1)), "-Inf"},
		{"named float", celsius(21.5), "21.5"},
		{"named float nan", celsius(math.NaN()), "NaN"},
		{"decimal", decimal.RequireFromString("10.00"), "10"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
		{"named string", label("x"), "x"},
		{"list", []any{1, "a", nil}, "1,a,null"},
		{"nested list", []any{[]int{1, 2}, 3}, "1,2,3"},
		{"map", map[string]any{"a": 1}, "{a: 1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stringify(tt.value))
		})
	}
}

func TestNegate(t *testing.T) {
	assert.Equal(t, "false", negate("true"))
	assert.Equal(t, "true", negate("false"))
	assert.Equal(t, "true", negate("anything"))
}
