package pure_utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    json.RawMessage
		expected string
	}{
		{
			name:     "nil input",
			input:    nil,
			expected: "null",
		},
		{
			name:     "null literal",
			input:    json.RawMessage(`null`),
			expected: "null",
		},
		{
			name:     "key order is normalized",
			input:    json.RawMessage(`{"b": 2, "a": 1}`),
			expected: `{"a":1,"b":2}`,
		},
		{
			name:     "whitespace is stripped",
			input:    json.RawMessage("{\n  \"title\": \"contract.pdf\"\n}"),
			expected: `{"title":"contract.pdf"}`,
		},
		{
			name:     "nested objects are normalized too",
			input:    json.RawMessage(`{"outer": {"z": true, "a": [3, 2, 1]}}`),
			expected: `{"outer":{"a":[3,2,1],"z":true}}`,
		},
		{
			name:     "number literals survive unchanged",
			input:    json.RawMessage(`{"size": 12345678901234567890, "ratio": 0.1}`),
			expected: `{"ratio":0.1,"size":12345678901234567890}`,
		},
		{
			name:     "html characters are not escaped",
			input:    json.RawMessage(`{"name": "a<b>&c"}`),
			expected: `{"name":"a<b>&c"}`,
		},
		{
			name:     "scalar document",
			input:    json.RawMessage(`"just a string"`),
			expected: `"just a string"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := CanonicalJSON(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestCanonicalJSONIsStableAcrossEquivalentDocuments(t *testing.T) {
	first, err := CanonicalJSON(json.RawMessage(`{"a": 1, "b": {"c": [1, 2]}}`))
	assert.NoError(t, err)
	second, err := CanonicalJSON(json.RawMessage("{\"b\":{\"c\":[1,2]}, \"a\":1}"))
	assert.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestCanonicalJSONRejectsInvalidInput(t *testing.T) {
	_, err := CanonicalJSON(json.RawMessage(`{"unterminated": `))
	assert.Error(t, err)
}
