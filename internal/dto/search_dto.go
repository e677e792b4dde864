package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchTokenPayload struct {
	Id          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Operator    string  `json:"operator" validate:"omitempty,oneof=AND OR NOT"`
}

type TokenListResponse struct {
	Tokens []SearchTokenPayload `json:"tokens"`
	Query  string               `json:"query"`
}

type QueryPreviewResponse struct {
	Query string `json:"query"`
}

type ConceptSuggestion struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
}

type SuggestResponse struct {
	Suggestions []ConceptSuggestion `json:"suggestions"`
}

// StudyResult is the normalized form of one raw downstream document.
type StudyResult struct {
	DocumentId      *string  `json:"document_id"`
	Title           string   `json:"title"`
	Authors         *string  `json:"authors"`
	PublicationDate *string  `json:"publication_date"`
	Journal         *string  `json:"journal"`
	Pmid            *string  `json:"pmid"`
	Doi             *string  `json:"doi"`
	Abstract        *string  `json:"abstract"`
	Source          string   `json:"source"`
	RelevanceScore  *float64 `json:"relevance_score"`
}

// ArticleResult is the UI-facing shape; the id falls back through
// pmid -> document id -> doi -> positional placeholder.
type ArticleResult struct {
	Id              string   `json:"id"`
	Title           string   `json:"title"`
	Authors         *string  `json:"authors"`
	PublicationDate *string  `json:"publication_date"`
	Journal         *string  `json:"journal"`
	Pmid            *string  `json:"pmid"`
	Doi             *string  `json:"doi"`
	Abstract        *string  `json:"abstract"`
	Source          string   `json:"source"`
	RelevanceScore  *float64 `json:"relevance_score"`
	Date            *string  `json:"date"`
	Tags            []string `json:"tags"`
}

type SearchDocumentsResponse struct {
	Query    string          `json:"query"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Articles []ArticleResult `json:"articles"`
}

// SearchPerformedMessage is the watermill payload written to the
// search history by the consumer.
type SearchPerformedMessage struct {
	SessionID  string               `json:"session_id"`
	Query      string               `json:"query"`
	Tokens     []SearchTokenPayload `json:"tokens"`
	SearchedAt time.Time            `json:"searched_at"`
}

type SearchLogResponse struct {
	Id         uuid.UUID            `json:"id"`
	Query      string               `json:"query"`
	Tokens     []SearchTokenPayload `json:"tokens"`
	TokenCount int                  `json:"token_count"`
	SearchedAt time.Time            `json:"searched_at"`
}

type SearchHistoryResponse struct {
	Searches []SearchLogResponse `json:"searches"`
}
