package notesdoc

import (
	"strings"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ok   bool
	}{
		{"doc", `{"type":"doc","content":[]}`, true},
		{"leading space", `  {"type":"doc"}`, true},
		{"missing type", `{"content":[]}`, false},
		{"numeric type", `{"type":1}`, false},
		{"empty type", `{"type":""}`, false},
		{"array root", `[{"type":"doc"}]`, false},
		{"string root", `"doc"`, false},
		{"broken", `{"type":"doc",`, false},
		{"empty", ``, false},
		{"nested type only", `{"content":[{"type":"text"}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, common.ErrorBadRequest)
			}
		})
	}
}

func TestValidate_Size(t *testing.T) {
	wrap := func(n int) []byte {
		// {"type":"doc","x":"<pad>"} is 21 bytes plus the padding.
		return []byte(`{"type":"doc","x":"` + strings.Repeat("a", n-21) + `"}`)
	}

	assert.NoError(t, Validate(wrap(MaxBytes)))
	assert.ErrorIs(t, Validate(wrap(MaxBytes+1)), common.ErrorBadRequest)
}

func TestAppendSummary_FreshDocument(t *testing.T) {
	for _, existing := range []string{"", "null", "not json", `{"type":"doc"}`} {
		out, err := AppendSummary([]byte(existing), 4, "Short summary.")
		require.NoError(t, err)
		require.NoError(t, Validate(out))

		assert.JSONEq(t, `{"type":"doc","content":[
			{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Page 4 Summary"}]},
			{"type":"paragraph","content":[{"type":"text","text":"Short summary."}]}
		]}`, string(out), "existing %q", existing)
	}
}

func TestAppendSummary_KeepsExistingNodes(t *testing.T) {
	existing := `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"mine"}]}]}`

	out, err := AppendSummary([]byte(existing), 1, `quotes " and \ escapes`)
	require.NoError(t, err)

	count := 0
	_, err = jsonparser.ArrayEach(out, func([]byte, jsonparser.ValueType, int, error) { count++ }, "content")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	first, err := jsonparser.GetString(out, "content", "[0]", "content", "[0]", "text")
	require.NoError(t, err)
	assert.Equal(t, "mine", first)

	text, err := jsonparser.GetString(out, "content", "[2]", "content", "[0]", "text")
	require.NoError(t, err)
	assert.Equal(t, `quotes " and \ escapes`, text)
}
