package switchtag

import (
	"testing"

	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/stretchr/testify/assert"
)

type order struct {
	meal  string
	sides []string
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name     string
		subject  interface{}
		value    interface{}
		expected bool
	}{
		{name: "equal strings", subject: "spam", value: "spam", expected: true},
		{name: "different strings", subject: "spam", value: "eggs", expected: false},
		{name: "int and uint", subject: 2, value: uint8(2), expected: true},
		{name: "nil and nil", subject: nil, value: nil, expected: true},
		{name: "nil and list", subject: nil, value: []string{"a"}, expected: false},
		{name: "same list", subject: []string{"a", "b"}, value: []string{"a", "b"}, expected: true},
		{name: "list element order matters", subject: []string{"a", "b"}, value: []string{"b", "a"}, expected: false},
		{name: "string and interface lists", subject: []string{"a"}, value: []interface{}{"a"}, expected: true},
		{name: "int widths in lists", subject: []int{1}, value: []int64{1}, expected: true},
		{name: "array and slice", subject: [2]int{1, 2}, value: []int{1, 2}, expected: true},
		{name: "list and string", subject: []string{"a"}, value: "a", expected: false},
		{name: "same map", subject: map[string]int{"a": 1}, value: map[string]interface{}{"a": 1}, expected: true},
		{name: "different map", subject: map[string]int{"a": 1}, value: map[string]int{"a": 2}, expected: false},
		{name: "nested structures", subject: map[string][]string{"a": {"x"}}, value: map[string]interface{}{"a": []interface{}{"x"}}, expected: true},
		{
			name:     "gonja list",
			subject:  []string{"a"},
			value:    exec.ValuesList{exec.AsValue("a")},
			expected: true,
		},
		{
			name:     "gonja dict",
			subject:  map[string]string{"meal": "spam"},
			value:    &exec.Dict{Pairs: []*exec.Pair{{Key: exec.AsValue("meal"), Value: exec.AsValue("spam")}}},
			expected: true,
		},
		{
			name:     "structs with unexported fields",
			subject:  order{meal: "spam", sides: []string{"eggs"}},
			value:    order{meal: "spam", sides: []string{"eggs"}},
			expected: true,
		},
		{
			name:     "different structs",
			subject:  order{meal: "spam"},
			value:    order{meal: "ham"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, valuesEqual(exec.AsValue(tt.subject), exec.AsValue(tt.value)))
			})
		})
	}
}

func TestValuesEqual_Pointers(t *testing.T) {
	count := 2
	meal := "spam"

	assert.True(t, valuesEqual(exec.AsValue(&count), exec.AsValue(2)))
	assert.True(t, valuesEqual(exec.AsValue(&meal), exec.AsValue("spam")))
	assert.False(t, valuesEqual(exec.AsValue((*string)(nil)), exec.AsValue("spam")))
}
