package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"concept-search-be/internal/dto"
	"concept-search-be/pkg/conceptapi"
)

// transformDocument normalizes one raw downstream document. The
// upstream is loose about author and identifier shapes, so every branch
// degrades instead of failing.
func transformDocument(doc conceptapi.RawDocument) dto.StudyResult {
	source := doc.DocumentType
	if source == "" {
		source = "unknown"
	}

	pmid, doi := extractIdentifiers(doc.OtherIds)

	return dto.StudyResult{
		DocumentId:      doc.DocumentId,
		Title:           doc.Title,
		Authors:         parseAuthors(doc.Authors),
		PublicationDate: doc.Published,
		Journal:         doc.Journal,
		Pmid:            pmid,
		Doi:             doi,
		Abstract:        doc.Snippet,
		Source:          source,
		RelevanceScore:  doc.RelevanceScore,
	}
}

// parseAuthors flattens the upstream author field, which may be a list
// of objects (name or given_name), a list of strings, a mixed list, or
// a single string.
func parseAuthors(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err == nil {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			var obj struct {
				Name      string `json:"name"`
				GivenName string `json:"given_name"`
			}
			if err := json.Unmarshal(entry, &obj); err == nil && (obj.Name != "" || obj.GivenName != "") {
				if obj.Name != "" {
					names = append(names, obj.Name)
				} else {
					names = append(names, obj.GivenName)
				}
				continue
			}
			var str string
			if err := json.Unmarshal(entry, &str); err == nil {
				names = append(names, str)
				continue
			}
			names = append(names, string(entry))
		}
		joined := strings.Join(names, ", ")
		return &joined
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return &str
	}

	fallback := string(raw)
	return &fallback
}

// extractIdentifiers pulls pmid and doi out of the other_ids list.
// Entries carry either type/value or namespace/id key pairs.
func extractIdentifiers(raw json.RawMessage) (pmid, doi *string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var entries []struct {
		Type      string `json:"type"`
		Namespace string `json:"namespace"`
		Value     string `json:"value"`
		Id        string `json:"id"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil
	}

	for _, entry := range entries {
		idType := entry.Type
		if idType == "" {
			idType = entry.Namespace
		}
		value := entry.Value
		if value == "" {
			value = entry.Id
		}
		if value == "" {
			continue
		}

		switch idType {
		case "pmid":
			v := value
			pmid = &v
		case "doi":
			v := value
			doi = &v
		}
	}
	return pmid, doi
}

// studyToArticle converts a StudyResult into the UI article shape. The
// article id prefers pmid, then the raw document id, then doi, then a
// positional placeholder so list rendering always has a stable key.
func studyToArticle(study dto.StudyResult, index int) dto.ArticleResult {
	var articleId string
	switch {
	case study.Pmid != nil && *study.Pmid != "":
		articleId = fmt.Sprintf("pmid:%s", *study.Pmid)
	case study.DocumentId != nil && *study.DocumentId != "":
		articleId = fmt.Sprintf("doc:%s", *study.DocumentId)
	case study.Doi != nil && *study.Doi != "":
		articleId = fmt.Sprintf("doi:%s", *study.Doi)
	default:
		articleId = fmt.Sprintf("doc:fallback_%d", index)
	}

	return dto.ArticleResult{
		Id:              articleId,
		Title:           study.Title,
		Authors:         study.Authors,
		PublicationDate: study.PublicationDate,
		Journal:         study.Journal,
		Pmid:            study.Pmid,
		Doi:             study.Doi,
		Abstract:        study.Abstract,
		Source:          study.Source,
		RelevanceScore:  study.RelevanceScore,
		Date:            study.PublicationDate,
		Tags:            []string{},
	}
}
