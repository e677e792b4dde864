package conceptapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/documents/search", r.URL.Path)
		assert.Equal(t, "concept_id(gene:BRCA1)", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("page_size"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"document_id":     "12345",
					"title":           "BRCA1 mutations",
					"authors":         []map[string]string{{"name": "Jane Doe"}},
					"published":       "2024-01-15",
					"journal":         "Nature",
					"other_ids":       []map[string]string{{"type": "pmid", "value": "98765"}},
					"snippet":         "We report...",
					"document_type":   "article",
					"relevance_score": 0.92,
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	docs, err := client.SearchDocuments(context.Background(), "concept_id(gene:BRCA1)", 1, 20)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	require.NotNil(t, doc.DocumentId)
	assert.Equal(t, "12345", *doc.DocumentId)
	assert.Equal(t, "BRCA1 mutations", doc.Title)
	require.NotNil(t, doc.RelevanceScore)
	assert.InDelta(t, 0.92, *doc.RelevanceScore, 0.0001)
}

func TestSearchDocumentsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.SearchDocuments(context.Background(), "q", 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSuggestConcepts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/concepts/suggest", r.URL.Path)
		assert.Equal(t, "brc", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "gene:BRCA1", "name": "BRCA1", "type": "gene"},
				{"id": "gene:BRCA2", "name": "BRCA2", "type": "gene"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	suggestions, err := client.SuggestConcepts(context.Background(), "brc", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "gene:BRCA1", suggestions[0].Id)
	assert.Equal(t, "gene", suggestions[0].Type)
}

func TestSuggestConceptsNoAPIKeyParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An empty configured key must not leak an empty api_key param.
		_, present := r.URL.Query()["api_key"]
		assert.False(t, present)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.SuggestConcepts(context.Background(), "x", 1)
	require.NoError(t, err)
}
