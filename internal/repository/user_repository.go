package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SearchLearners matches query case-insensitively against name and email.
	SearchLearners(ctx context.Context, query string, limit int) ([]domain.User, error)
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "user", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "user", "create", "success")
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "user", "find_by_id", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(ctx, "user", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "user", "find_by_id", "success")
	return &u, nil
}

func (r *GormUserRepository) SearchLearners(ctx context.Context, query string, limit int) ([]domain.User, error) {
	pattern := containsPattern(query)
	q := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleLearner).
		Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, pattern, pattern).
		Order("name asc, id asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	users := []domain.User{}
	if err := q.Find(&users).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "user", "search_learners", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "user", "search_learners", "success")
	return users, nil
}

type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	latency latency
}

func NewMemoryUserRepository(simulatedLatency time.Duration) *MemoryUserRepository {
	return &MemoryUserRepository{byID: map[string]domain.User{}, latency: latency(simulatedLatency)}
}

func (r *MemoryUserRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = map[string]domain.User{}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.latency.wait(ctx); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	r.byID[user.ID] = *user
	r.mu.Unlock()
	observability.RecordRepositoryOperation(ctx, "user", "create", "success")
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := r.latency.wait(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	u, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		observability.RecordRepositoryOperation(ctx, "user", "find_by_id", "not_found")
		return nil, ErrUserNotFound
	}
	observability.RecordRepositoryOperation(ctx, "user", "find_by_id", "success")
	return &u, nil
}

func (r *MemoryUserRepository) SearchLearners(ctx context.Context, query string, limit int) ([]domain.User, error) {
	if err := r.latency.wait(ctx); err != nil {
		observability.RecordRepositoryOperation(ctx, "user", "search_learners", "error")
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	r.mu.RLock()
	users := []domain.User{}
	for _, u := range r.byID {
		if u.Role != domain.RoleLearner {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	r.mu.RUnlock()
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	observability.RecordRepositoryOperation(ctx, "user", "search_learners", "success")
	return users, nil
}
