package entity

import (
	"encoding/json"
	"fmt"
)

// Operator joins a search token to the token preceding it in the query.
// The operator on the first token of a list is stored but never rendered.
type Operator string

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
	OperatorNot Operator = "NOT"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorAnd, OperatorOr, OperatorNot:
		return true
	}
	return false
}

// UnmarshalJSON rejects anything outside the closed AND/OR/NOT set so a
// tampered session payload fails decoding instead of leaking an
// arbitrary string into the compiled query.
func (o *Operator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	op := Operator(s)
	if !op.Valid() {
		return fmt.Errorf("invalid operator %q", s)
	}
	*o = op
	return nil
}

// SearchToken is one selected concept or free-text term in a compound
// search query. Ontology concepts carry a namespaced id (e.g.
// "gene:BRCA1"); free-text terms use a synthesized id ("free_text:..."
// or any id without a colon).
type SearchToken struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Operator    Operator `json:"operator"`
}

// searchTokenAlias sidesteps the custom UnmarshalJSON recursion.
type searchTokenAlias SearchToken

// UnmarshalJSON applies the AND default for a missing operator. Empty
// id and name are legal values: an empty id is exactly what routes a
// token through the free-text compiler fallback, so the decode boundary
// must round-trip it rather than reject it.
func (t *SearchToken) UnmarshalJSON(data []byte) error {
	raw := searchTokenAlias{Operator: OperatorAnd}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = SearchToken(raw)
	return nil
}

// DecodeSearchTokens parses the serialized session payload. Callers that
// must never fail (the public store surface) collapse the error to an
// empty list; keeping it here keeps the corrupt-payload path testable.
func DecodeSearchTokens(raw string) ([]SearchToken, error) {
	if raw == "" {
		return []SearchToken{}, nil
	}
	var tokens []SearchToken
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, err
	}
	if tokens == nil {
		tokens = []SearchToken{}
	}
	return tokens, nil
}

// EncodeSearchTokens serializes tokens for session storage. The empty
// list encodes as "[]" so a cleared session round-trips to empty.
func EncodeSearchTokens(tokens []SearchToken) (string, error) {
	if tokens == nil {
		tokens = []SearchToken{}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
