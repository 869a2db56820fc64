package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/repository"
)

const tokenCacheTTL = 5 * time.Minute

// TokenService serves supported asset metadata through a timestamp-gated
// in-process cache. Staleness up to the TTL is harmless; concurrent
// refreshes race benignly (last writer wins).
type TokenService struct {
	tokens repository.TokenRepository

	mu        sync.RWMutex
	cached    []domain.BaseToken
	fetchedAt time.Time
	now       func() time.Time
}

// NewTokenService constructs the service.
func NewTokenService(tokens repository.TokenRepository) *TokenService {
	return &TokenService{tokens: tokens, now: time.Now}
}

// ActiveTokens returns the active token set, refreshing the cache when the
// TTL has lapsed.
func (s *TokenService) ActiveTokens(ctx context.Context) ([]domain.BaseToken, error) {
	s.mu.RLock()
	cached, fetchedAt := s.cached, s.fetchedAt
	s.mu.RUnlock()

	if cached != nil && s.now().Sub(fetchedAt) < tokenCacheTTL {
		return cached, nil
	}

	fresh, err := s.tokens.ListActive(ctx)
	if err != nil {
		// serve stale data over an error when we have any
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cached = fresh
	s.fetchedAt = s.now()
	s.mu.Unlock()
	return fresh, nil
}
