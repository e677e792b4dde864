package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"concept-search-be/internal/constant"
	"concept-search-be/internal/dto"
	"concept-search-be/internal/entity"
	"concept-search-be/internal/pkg/logger"
	"concept-search-be/internal/repository/contract"
	"concept-search-be/pkg/conceptapi"
	"concept-search-be/pkg/events"
	pktNats "concept-search-be/pkg/nats"
	"concept-search-be/pkg/query"
	"concept-search-be/pkg/store"
)

// ErrHistoryUnavailable is returned when the service runs without a
// database; the session-backed token core keeps working regardless.
var ErrHistoryUnavailable = fmt.Errorf("search history is unavailable")

type ISearchService interface {
	GetTokens(sess store.Session) *dto.TokenListResponse
	AddToken(sess store.Session, req *dto.SearchTokenPayload) *dto.TokenListResponse
	RemoveToken(sess store.Session, tokenId string) *dto.TokenListResponse
	ToggleOperator(sess store.Session, index int) *dto.TokenListResponse
	ClearTokens(sess store.Session) *dto.TokenListResponse
	CompileQuery(sess store.Session) *dto.QueryPreviewResponse
	Suggest(ctx context.Context, prefix string) (*dto.SuggestResponse, error)
	Search(ctx context.Context, sess *store.SessionData, page, pageSize int) (*dto.SearchDocumentsResponse, error)
	History(ctx context.Context, sessionID string, limit int) (*dto.SearchHistoryResponse, error)
}

type searchService struct {
	tokenService     ITokenService
	client           *conceptapi.Client
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	searchLogRepo    contract.SearchLogRepository
	logger           logger.ILogger

	suggestLimit int
	suggestTTL   time.Duration
	suggestCache sync.Map
}

type cachedSuggestions struct {
	data      *dto.SuggestResponse
	expiresAt time.Time
}

func NewSearchService(
	tokenService ITokenService,
	client *conceptapi.Client,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	searchLogRepo contract.SearchLogRepository,
	log logger.ILogger,
	suggestLimit int,
	suggestTTL time.Duration,
) ISearchService {
	return &searchService{
		tokenService:     tokenService,
		client:           client,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		searchLogRepo:    searchLogRepo,
		logger:           log,
		suggestLimit:     suggestLimit,
		suggestTTL:       suggestTTL,
	}
}

// --- Token operations (delegating to the session-backed store) ---

func (s *searchService) GetTokens(sess store.Session) *dto.TokenListResponse {
	return s.tokenListResponse(s.tokenService.Get(sess, ""))
}

func (s *searchService) AddToken(sess store.Session, req *dto.SearchTokenPayload) *dto.TokenListResponse {
	op := entity.Operator(req.Operator)
	if !op.Valid() {
		op = entity.OperatorAnd
	}
	token := entity.SearchToken{
		Id:          req.Id,
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Operator:    op,
	}
	return s.tokenListResponse(s.tokenService.Add(sess, token, ""))
}

func (s *searchService) RemoveToken(sess store.Session, tokenId string) *dto.TokenListResponse {
	return s.tokenListResponse(s.tokenService.Remove(sess, tokenId, ""))
}

func (s *searchService) ToggleOperator(sess store.Session, index int) *dto.TokenListResponse {
	return s.tokenListResponse(s.tokenService.ToggleOperator(sess, index, ""))
}

func (s *searchService) ClearTokens(sess store.Session) *dto.TokenListResponse {
	s.tokenService.Clear(sess, "")
	return s.tokenListResponse([]entity.SearchToken{})
}

func (s *searchService) CompileQuery(sess store.Session) *dto.QueryPreviewResponse {
	tokens := s.tokenService.Get(sess, "")
	return &dto.QueryPreviewResponse{Query: compileTokens(tokens)}
}

// --- Downstream search ---

func (s *searchService) Search(ctx context.Context, sess *store.SessionData, page, pageSize int) (*dto.SearchDocumentsResponse, error) {
	tokens := s.tokenService.Get(sess, "")
	compiled := compileTokens(tokens)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	res := &dto.SearchDocumentsResponse{
		Query:    compiled,
		Page:     page,
		PageSize: pageSize,
		Articles: []dto.ArticleResult{},
	}

	// Nothing selected compiles to the empty query; don't bother the
	// downstream API with it.
	if compiled == "" {
		return res, nil
	}

	docs, err := s.client.SearchDocuments(ctx, compiled, page, pageSize)
	if err != nil {
		return nil, err
	}

	for i, doc := range docs {
		study := transformDocument(doc)
		res.Articles = append(res.Articles, studyToArticle(study, i))
	}

	s.publishSearchPerformed(ctx, sess.ID, compiled, tokens)

	return res, nil
}

func (s *searchService) publishSearchPerformed(ctx context.Context, sessionID, compiled string, tokens []entity.SearchToken) {
	msgPayload := dto.SearchPerformedMessage{
		SessionID:  sessionID,
		Query:      compiled,
		Tokens:     tokenPayloads(tokens),
		SearchedAt: time.Now(),
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		s.logger.Error("search", "Failed to marshal search event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if s.publisherService != nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.logger.Warn("search", "Failed to publish search message", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// External event is auxiliary; log and move on when the bus is down.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: constant.SearchPerformedEventType,
			Data: map[string]interface{}{
				"session_id":  sessionID,
				"query":       compiled,
				"token_count": len(tokens),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("search", "Failed to publish SEARCH_PERFORMED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// --- Suggestions ---

func (s *searchService) Suggest(ctx context.Context, prefix string) (*dto.SuggestResponse, error) {
	cacheKey := fmt.Sprintf("suggest:%s", prefix)
	if val, ok := s.suggestCache.Load(cacheKey); ok {
		item := val.(cachedSuggestions)
		if time.Now().Before(item.expiresAt) {
			return item.data, nil
		}
		s.suggestCache.Delete(cacheKey)
	}

	raw, err := s.client.SuggestConcepts(ctx, prefix, s.suggestLimit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ConceptSuggestion, 0, len(raw))
	for _, sg := range raw {
		suggestions = append(suggestions, dto.ConceptSuggestion{
			Id:          sg.Id,
			Name:        sg.Name,
			Type:        sg.Type,
			Description: sg.Description,
		})
	}

	response := &dto.SuggestResponse{Suggestions: suggestions}
	s.suggestCache.Store(cacheKey, cachedSuggestions{
		data:      response,
		expiresAt: time.Now().Add(s.suggestTTL),
	})
	return response, nil
}

// --- History ---

func (s *searchService) History(ctx context.Context, sessionID string, limit int) (*dto.SearchHistoryResponse, error) {
	if s.searchLogRepo == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	logs, err := s.searchLogRepo.FindBySessionID(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	searches := make([]dto.SearchLogResponse, 0, len(logs))
	for _, l := range logs {
		searches = append(searches, dto.SearchLogResponse{
			Id:         l.Id,
			Query:      l.Query,
			Tokens:     tokenPayloads(l.Tokens),
			TokenCount: l.TokenCount,
			SearchedAt: l.SearchedAt,
		})
	}
	return &dto.SearchHistoryResponse{Searches: searches}, nil
}

// --- Mapping helpers ---

func (s *searchService) tokenListResponse(tokens []entity.SearchToken) *dto.TokenListResponse {
	return &dto.TokenListResponse{
		Tokens: tokenPayloads(tokens),
		Query:  compileTokens(tokens),
	}
}

func tokenPayloads(tokens []entity.SearchToken) []dto.SearchTokenPayload {
	payloads := make([]dto.SearchTokenPayload, 0, len(tokens))
	for _, t := range tokens {
		payloads = append(payloads, dto.SearchTokenPayload{
			Id:          t.Id,
			Name:        t.Name,
			Type:        t.Type,
			Description: t.Description,
			Operator:    string(t.Operator),
		})
	}
	return payloads
}

// compileTokens renders the stored token list through the query
// compiler. operators[i] belongs to the token *after* position i; the
// first token's stored operator is never rendered.
func compileTokens(tokens []entity.SearchToken) string {
	terms := make([]query.Term, 0, len(tokens))
	operators := make([]string, 0)
	for i, t := range tokens {
		termType := ""
		if t.Type != nil {
			termType = *t.Type
		}
		terms = append(terms, query.Term{
			ID:   t.Id,
			Name: t.Name,
			Type: termType,
		})
		if i > 0 {
			operators = append(operators, string(t.Operator))
		}
	}
	return query.Build(terms, operators)
}
