package service

import (
	"concept-search-be/internal/constant"
	"concept-search-be/internal/entity"
	"concept-search-be/internal/pkg/logger"
	"concept-search-be/pkg/store"
)

// ITokenService maintains the ordered, deduplicated search-token list
// for one session, serialized under a session key. None of the
// operations fail: corrupt stored state degrades to the empty list and
// invalid mutations are silent no-ops. The session key defaults to
// constant.SearchTokensSessionKey when passed as "".
type ITokenService interface {
	Get(sess store.Session, key string) []entity.SearchToken
	Set(sess store.Session, tokens []entity.SearchToken, key string)
	Add(sess store.Session, token entity.SearchToken, key string) []entity.SearchToken
	Remove(sess store.Session, tokenId string, key string) []entity.SearchToken
	ToggleOperator(sess store.Session, index int, key string) []entity.SearchToken
	Clear(sess store.Session, key string)
}

type tokenService struct {
	logger logger.ILogger
}

func NewTokenService(log logger.ILogger) ITokenService {
	return &tokenService{
		logger: log,
	}
}

func sessionKey(key string) string {
	if key == "" {
		return constant.SearchTokensSessionKey
	}
	return key
}

func (s *tokenService) Get(sess store.Session, key string) []entity.SearchToken {
	key = sessionKey(key)

	raw, ok := sess.Get(key)
	if !ok {
		return []entity.SearchToken{}
	}

	tokens, err := entity.DecodeSearchTokens(raw)
	if err != nil {
		// Corrupt session state must never break the page; the user just
		// sees no filters selected.
		s.logger.Warn("search-tokens", "Discarding corrupt token payload", map[string]interface{}{
			"session_key": key,
			"error":       err.Error(),
		})
		return []entity.SearchToken{}
	}
	return tokens
}

func (s *tokenService) Set(sess store.Session, tokens []entity.SearchToken, key string) {
	key = sessionKey(key)

	raw, err := entity.EncodeSearchTokens(tokens)
	if err != nil {
		s.logger.Error("search-tokens", "Failed to encode tokens", map[string]interface{}{
			"session_key": key,
			"error":       err.Error(),
		})
		return
	}
	sess.Set(key, raw)
}

func (s *tokenService) Add(sess store.Session, token entity.SearchToken, key string) []entity.SearchToken {
	tokens := s.Get(sess, key)

	for _, t := range tokens {
		if t.Id == token.Id {
			// Idempotent: no duplicate, no reorder, no field merge.
			return tokens
		}
	}

	if !token.Operator.Valid() {
		token.Operator = entity.OperatorAnd
	}

	tokens = append(tokens, token)
	s.Set(sess, tokens, key)
	return tokens
}

func (s *tokenService) Remove(sess store.Session, tokenId string, key string) []entity.SearchToken {
	tokens := s.Get(sess, key)

	filtered := make([]entity.SearchToken, 0, len(tokens))
	for _, t := range tokens {
		if t.Id != tokenId {
			filtered = append(filtered, t)
		}
	}

	s.Set(sess, filtered, key)
	return filtered
}

func (s *tokenService) ToggleOperator(sess store.Session, index int, key string) []entity.SearchToken {
	tokens := s.Get(sess, key)

	// Index 0 is excluded: the first token's operator has no preceding
	// term and is never rendered. Out-of-range indices come from stale
	// clients and are ignored.
	if index <= 0 || index >= len(tokens) {
		return tokens
	}

	switch tokens[index].Operator {
	case entity.OperatorAnd:
		tokens[index].Operator = entity.OperatorOr
	case entity.OperatorOr:
		tokens[index].Operator = entity.OperatorAnd
	default:
		// NOT is only settable via Add/Set and is not part of the
		// two-state UI toggle; leave it untouched and persist nothing.
		return tokens
	}

	s.Set(sess, tokens, key)
	return tokens
}

func (s *tokenService) Clear(sess store.Session, key string) {
	s.Set(sess, []entity.SearchToken{}, key)
}
