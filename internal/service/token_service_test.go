package service

import (
	"testing"

	"concept-search-be/internal/constant"
	"concept-search-be/internal/entity"
	"concept-search-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func strPtr(s string) *string { return &s }

func brca1() entity.SearchToken {
	return entity.SearchToken{Id: "gene:BRCA1", Name: "BRCA1", Type: strPtr("gene"), Operator: entity.OperatorAnd}
}

func breastCancer() entity.SearchToken {
	return entity.SearchToken{Id: "disease:D001943", Name: "Breast Neoplasms", Type: strPtr("disease"), Operator: entity.OperatorOr}
}

func freeText() entity.SearchToken {
	return entity.SearchToken{Id: "free_text:chemo", Name: "chemo", Type: strPtr("free_text"), Operator: entity.OperatorNot}
}

func newTokenServiceForTest() (ITokenService, *store.SessionData) {
	return NewTokenService(nopLogger{}), store.NewSessionData("test-session")
}

func TestTokenServiceGet(t *testing.T) {
	t.Run("fresh session returns empty list", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		assert.Empty(t, svc.Get(sess, ""))
	})

	t.Run("corrupt payload returns empty list without error", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		sess.Set(constant.SearchTokensSessionKey, "{definitely not json")
		assert.Empty(t, svc.Get(sess, ""))
	})

	t.Run("wrong shape returns empty list", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		sess.Set(constant.SearchTokensSessionKey, `{"id":"x"}`)
		assert.Empty(t, svc.Get(sess, ""))
	})

	t.Run("empty key falls back to the default session key", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		svc.Add(sess, brca1(), "")
		_, ok := sess.Get(constant.SearchTokensSessionKey)
		assert.True(t, ok)
	})

	t.Run("custom key is honored", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		svc.Add(sess, brca1(), "other_tokens")
		assert.Empty(t, svc.Get(sess, ""))
		assert.Len(t, svc.Get(sess, "other_tokens"), 1)
	})
}

func TestTokenServiceSetRoundTrip(t *testing.T) {
	svc, sess := newTokenServiceForTest()

	original := []entity.SearchToken{brca1(), breastCancer(), freeText()}
	svc.Set(sess, original, "")

	got := svc.Get(sess, "")
	require.Equal(t, original, got)
}

func TestTokenServiceRoundTripWithEmptyIdToken(t *testing.T) {
	svc, sess := newTokenServiceForTest()

	// An empty id compiles through the free-text fallback; storing one
	// must not poison the whole list on the next read.
	original := []entity.SearchToken{
		brca1(),
		{Id: "", Name: "loose term", Operator: entity.OperatorOr},
	}
	svc.Set(sess, original, "")

	got := svc.Get(sess, "")
	require.Len(t, got, 2)
	assert.Equal(t, original, got)
}

func TestTokenServiceAdd(t *testing.T) {
	t.Run("add appends in arrival order", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()

		got := svc.Add(sess, brca1(), "")
		require.Len(t, got, 1)

		got = svc.Add(sess, breastCancer(), "")
		require.Len(t, got, 2)
		assert.Equal(t, "gene:BRCA1", got[0].Id)
		assert.Equal(t, "disease:D001943", got[1].Id)
	})

	t.Run("duplicate id is an idempotent no-op", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		svc.Add(sess, brca1(), "")
		svc.Add(sess, breastCancer(), "")

		// Same id, different fields: no merge, no reorder.
		dup := entity.SearchToken{Id: "gene:BRCA1", Name: "renamed", Operator: entity.OperatorNot}
		got := svc.Add(sess, dup, "")

		require.Len(t, got, 2)
		assert.Equal(t, "BRCA1", got[0].Name)
		assert.Equal(t, entity.OperatorAnd, got[0].Operator)
		assert.Equal(t, "disease:D001943", got[1].Id)
	})

	t.Run("invalid operator on add falls back to AND", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		got := svc.Add(sess, entity.SearchToken{Id: "drug:DB01234", Name: "Tamoxifen"}, "")
		require.Len(t, got, 1)
		assert.Equal(t, entity.OperatorAnd, got[0].Operator)
	})
}

func TestTokenServiceRemove(t *testing.T) {
	t.Run("removes exactly the matching token", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		svc.Set(sess, []entity.SearchToken{brca1(), breastCancer(), freeText()}, "")

		got := svc.Remove(sess, "disease:D001943", "")
		require.Len(t, got, 2)
		assert.Equal(t, "gene:BRCA1", got[0].Id)
		assert.Equal(t, "free_text:chemo", got[1].Id)

		// Persisted too.
		assert.Equal(t, got, svc.Get(sess, ""))
	})

	t.Run("removing a nonexistent id is a no-op", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		svc.Set(sess, []entity.SearchToken{brca1()}, "")

		got := svc.Remove(sess, "gene:TP53", "")
		require.Len(t, got, 1)
		assert.Equal(t, "gene:BRCA1", got[0].Id)
	})

	t.Run("removing from an empty session stays empty", func(t *testing.T) {
		svc, sess := newTokenServiceForTest()
		assert.Empty(t, svc.Remove(sess, "gene:BRCA1", ""))
	})
}

func TestTokenServiceToggleOperator(t *testing.T) {
	setup := func() (ITokenService, *store.SessionData) {
		svc, sess := newTokenServiceForTest()
		svc.Set(sess, []entity.SearchToken{brca1(), breastCancer(), freeText()}, "")
		return svc, sess
	}

	t.Run("index 0 never mutates", func(t *testing.T) {
		svc, sess := setup()
		got := svc.ToggleOperator(sess, 0, "")
		assert.Equal(t, entity.OperatorAnd, got[0].Operator)
		assert.Equal(t, entity.OperatorAnd, svc.Get(sess, "")[0].Operator)
	})

	t.Run("negative index is ignored", func(t *testing.T) {
		svc, sess := setup()
		got := svc.ToggleOperator(sess, -1, "")
		require.Len(t, got, 3)
	})

	t.Run("out of range index is ignored", func(t *testing.T) {
		svc, sess := setup()
		got := svc.ToggleOperator(sess, 3, "")
		require.Len(t, got, 3)
		assert.Equal(t, entity.OperatorOr, got[1].Operator)
	})

	t.Run("OR flips to AND and persists", func(t *testing.T) {
		svc, sess := setup()
		got := svc.ToggleOperator(sess, 1, "")
		assert.Equal(t, entity.OperatorAnd, got[1].Operator)
		assert.Equal(t, entity.OperatorAnd, svc.Get(sess, "")[1].Operator)
	})

	t.Run("AND flips back to OR", func(t *testing.T) {
		svc, sess := setup()
		svc.ToggleOperator(sess, 1, "")
		got := svc.ToggleOperator(sess, 1, "")
		assert.Equal(t, entity.OperatorOr, got[1].Operator)
	})

	t.Run("NOT is left unchanged", func(t *testing.T) {
		svc, sess := setup()
		got := svc.ToggleOperator(sess, 2, "")
		assert.Equal(t, entity.OperatorNot, got[2].Operator)
		assert.Equal(t, entity.OperatorNot, svc.Get(sess, "")[2].Operator)
	})

	t.Run("toggle leaves every other field untouched", func(t *testing.T) {
		svc, sess := setup()
		before := svc.Get(sess, "")
		after := svc.ToggleOperator(sess, 1, "")

		require.Len(t, after, 3)
		assert.Equal(t, before[0], after[0])
		assert.Equal(t, before[2], after[2])
		assert.Equal(t, before[1].Id, after[1].Id)
		assert.Equal(t, before[1].Name, after[1].Name)
		assert.Equal(t, before[1].Type, after[1].Type)
	})
}

func TestTokenServiceClear(t *testing.T) {
	svc, sess := newTokenServiceForTest()
	svc.Set(sess, []entity.SearchToken{brca1(), breastCancer()}, "")

	svc.Clear(sess, "")
	assert.Empty(t, svc.Get(sess, ""))

	// Clearing an already empty session succeeds too.
	svc.Clear(sess, "")
	assert.Empty(t, svc.Get(sess, ""))

	raw, ok := sess.Get(constant.SearchTokensSessionKey)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}
