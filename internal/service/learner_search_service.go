package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
)

const MinLearnerSearchQueryLen = 2

type LearnerSearchServiceImpl struct {
	users repository.UserRepository
}

func NewLearnerSearchService(users repository.UserRepository) *LearnerSearchServiceImpl {
	return &LearnerSearchServiceImpl{users: users}
}

// Search matches learners by name or email and returns every match. Queries
// shorter than two characters return no results without reaching the store.
func (s *LearnerSearchServiceImpl) Search(ctx context.Context, query string) ([]domain.User, error) {
	start := time.Now()
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinLearnerSearchQueryLen {
		observability.RecordLearnerSearch(ctx, "short_query", 0, time.Since(start))
		return []domain.User{}, nil
	}
	users, err := s.users.SearchLearners(ctx, query, 0)
	if err != nil {
		observability.RecordLearnerSearch(ctx, "error", 0, time.Since(start))
		return nil, err
	}
	observability.RecordLearnerSearch(ctx, "success", len(users), time.Since(start))
	return users, nil
}
