package query

import (
	"fmt"
	"strings"
)

// Term is the slice of a search token the compiler reads. Richer token
// types satisfy it structurally via a trivial mapping.
type Term struct {
	ID   string
	Name string
	Type string
}

const freeTextPrefix = "free_text:"

// formatTerm encodes one term for the downstream search backend.
// Resolved ontology concepts use the concept_id() syntax; everything
// else degrades to a double-quoted free-text literal.
func formatTerm(t Term) string {
	if t.ID != "" &&
		strings.Contains(t.ID, ":") &&
		!strings.HasPrefix(t.ID, freeTextPrefix) &&
		t.Type != "free_text" {
		return fmt.Sprintf("concept_id(%s)", t.ID)
	}
	// Quoted verbatim, no escaping: the upstream parser treats the quotes
	// as phrase markers, not string syntax.
	return `"` + t.Name + `"`
}

// Build renders an ordered term list into a single boolean query string.
// operators[i] joins term i+1 to term i; missing positions default to
// AND. The output is a strictly left-to-right chain: no parentheses, no
// precedence, no operator rewriting.
func Build(terms []Term, operators []string) string {
	if len(terms) == 0 {
		return ""
	}
	if len(terms) == 1 {
		return formatTerm(terms[0])
	}

	var b strings.Builder
	b.WriteString(formatTerm(terms[0]))
	for i, term := range terms[1:] {
		operator := "AND"
		if i < len(operators) {
			operator = operators[i]
		}
		b.WriteString(" " + operator + " " + formatTerm(term))
	}
	return b.String()
}
