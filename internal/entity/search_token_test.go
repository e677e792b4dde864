package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDecodeSearchTokens(t *testing.T) {
	t.Run("empty string decodes to empty list", func(t *testing.T) {
		tokens, err := DecodeSearchTokens("")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("empty array decodes to empty list", func(t *testing.T) {
		tokens, err := DecodeSearchTokens("[]")
		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("full token round trip preserves every field", func(t *testing.T) {
		original := []SearchToken{
			{Id: "gene:BRCA1", Name: "BRCA1", Type: strPtr("gene"), Description: strPtr("Breast cancer gene"), Operator: OperatorAnd},
			{Id: "disease:D001943", Name: "Breast Neoplasms", Type: strPtr("disease"), Operator: OperatorOr},
			{Id: "free_text:chemo", Name: "chemo", Type: strPtr("free_text"), Operator: OperatorNot},
		}

		raw, err := EncodeSearchTokens(original)
		require.NoError(t, err)

		decoded, err := DecodeSearchTokens(raw)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("null optional fields survive the round trip", func(t *testing.T) {
		original := []SearchToken{
			{Id: "free_text:cancer", Name: "cancer", Operator: OperatorAnd},
		}

		raw, err := EncodeSearchTokens(original)
		require.NoError(t, err)
		assert.Contains(t, raw, `"type":null`)
		assert.Contains(t, raw, `"description":null`)

		decoded, err := DecodeSearchTokens(raw)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("missing operator defaults to AND", func(t *testing.T) {
		tokens, err := DecodeSearchTokens(`[{"id":"gene:TP53","name":"TP53"}]`)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, OperatorAnd, tokens[0].Operator)
	})

	t.Run("invalid operator is rejected", func(t *testing.T) {
		_, err := DecodeSearchTokens(`[{"id":"gene:TP53","name":"TP53","operator":"XOR"}]`)
		assert.Error(t, err)
	})

	t.Run("empty id round trips", func(t *testing.T) {
		// An empty id is the free-text fallback shape, not corruption.
		original := []SearchToken{
			{Id: "gene:BRCA1", Name: "BRCA1", Type: strPtr("gene"), Operator: OperatorAnd},
			{Id: "", Name: "loose term", Operator: OperatorOr},
		}

		raw, err := EncodeSearchTokens(original)
		require.NoError(t, err)

		decoded, err := DecodeSearchTokens(raw)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("empty name round trips", func(t *testing.T) {
		original := []SearchToken{
			{Id: "gene:TP53", Name: "", Operator: OperatorAnd},
		}

		raw, err := EncodeSearchTokens(original)
		require.NoError(t, err)

		decoded, err := DecodeSearchTokens(raw)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		_, err := DecodeSearchTokens(`{"not":"a list"}`)
		assert.Error(t, err)
	})

	t.Run("truncated payload is rejected", func(t *testing.T) {
		_, err := DecodeSearchTokens(`[{"id":"gene:TP53","na`)
		assert.Error(t, err)
	})
}

func TestEncodeSearchTokens(t *testing.T) {
	t.Run("nil encodes as empty array", func(t *testing.T) {
		raw, err := EncodeSearchTokens(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", raw)
	})
}

func TestOperatorValid(t *testing.T) {
	assert.True(t, OperatorAnd.Valid())
	assert.True(t, OperatorOr.Valid())
	assert.True(t, OperatorNot.Valid())
	assert.False(t, Operator("").Valid())
	assert.False(t, Operator("and").Valid())
	assert.False(t, Operator("XOR").Valid())
}
