package service

import (
	"context"

	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/query"
)

type SearchService struct {
	subs *SubmissionService
}

func NewSearchService(subs *SubmissionService) *SearchService {
	return &SearchService{subs: subs}
}

type SearchRequest struct {
	TextQuery string      `json:"q,omitempty"`
	Kind      models.Kind `json:"kind,omitempty"`
}

type SearchResult struct {
	Docs  []models.Submission `json:"docs"`
	Total int                 `json:"total"`
	Mode  string              `json:"mode"`
}

// Search filters the newest-first collection by text and, optionally, kind.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, err
	}

	mode := "all"
	if req.TextQuery != "" {
		subs = query.Filter(subs, req.TextQuery)
		mode = "text"
	}
	if req.Kind != "" {
		kept := subs[:0:0]
		for _, sub := range subs {
			if sub.Kind == req.Kind {
				kept = append(kept, sub)
			}
		}
		subs = kept
		if mode == "all" {
			mode = "kind"
		}
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return &SearchResult{Docs: subs, Total: len(subs), Mode: mode}, nil
}
