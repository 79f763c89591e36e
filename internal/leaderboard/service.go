package leaderboard

import (
	"context"
	"log"

	"github.com/learnloop/backend/internal/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Service struct {
	store *Store
	cache *Cache
}

func NewService(store *Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Top returns the highest-ranked users. Cache failures fall through to the
// database; a slow leaderboard beats a missing one.
func (s *Service) Top(ctx context.Context, limit int) (*models.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	if cached, err := s.cache.Get(ctx, limit); err != nil {
		log.Printf("[leaderboard] cache read failed: %v", err)
	} else if cached != nil {
		return &models.LeaderboardResponse{Entries: cached}, nil
	}

	rows, err := s.store.Top(limit)
	if err != nil {
		return nil, err
	}
	entries := AssignRanks(rows)

	if err := s.cache.Set(ctx, limit, entries); err != nil {
		log.Printf("[leaderboard] cache write failed: %v", err)
	}

	return &models.LeaderboardResponse{Entries: entries}, nil
}

// MyStanding returns the caller's own entry with its global rank.
func (s *Service) MyStanding(userID int64) (*models.LeaderboardEntry, error) {
	row, err := s.store.RowOf(userID)
	if err != nil {
		return nil, err
	}
	rank, err := s.store.RankOf(*row)
	if err != nil {
		return nil, err
	}

	entry := entryOf(*row)
	entry.Rank = rank
	return &entry, nil
}
