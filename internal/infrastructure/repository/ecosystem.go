package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
	"github.com/ahashem12/LaunchpadX-sub001/internal/usecase"
)

type EcosystemRepository struct {
	db *gorm.DB
}

func NewEcosystemRepository(db *gorm.DB) *EcosystemRepository {
	return &EcosystemRepository{db: db}
}

// List returns every entry of kind, or all entries when kind is empty.
func (r *EcosystemRepository) List(ctx context.Context, kind domain.EcosystemKind) ([]domain.EcosystemEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.EcosystemEntry{})
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var rows []models.EcosystemEntry
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list ecosystem entries")
	}

	entries := make([]domain.EcosystemEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.EcosystemEntry{
			ID:          row.ID,
			Kind:        domain.EcosystemKind(row.Kind),
			Name:        row.Name,
			Description: row.Description,
			URL:         row.URL,
			Tags:        stringsOrEmpty(row.Tags),
		})
	}
	return entries, nil
}

const ecosystemCacheTTL = 5 * time.Minute

// CachedEcosystemRepository keeps directory listings in memcached.
// The directory is curated data, so a stale read for a few minutes is fine.
type CachedEcosystemRepository struct {
	inner usecase.EcosystemRepository
	mc    *memcache.Client
}

func NewCachedEcosystemRepository(inner usecase.EcosystemRepository, mc *memcache.Client) *CachedEcosystemRepository {
	return &CachedEcosystemRepository{inner: inner, mc: mc}
}

func ecosystemCacheKey(kind domain.EcosystemKind) string {
	if kind == "" {
		return "lpx:ecosystem:all"
	}
	return "lpx:ecosystem:" + string(kind)
}

func (r *CachedEcosystemRepository) List(ctx context.Context, kind domain.EcosystemKind) ([]domain.EcosystemEntry, error) {
	key := ecosystemCacheKey(kind)

	item, err := r.mc.Get(key)
	if err == nil {
		var entries []domain.EcosystemEntry
		if err := json.Unmarshal(item.Value, &entries); err == nil {
			return entries, nil
		}
		zap.L().Warn("discarding corrupt ecosystem cache entry", zap.String("key", key))
	} else if !errors.Is(err, memcache.ErrCacheMiss) {
		zap.L().Warn("ecosystem cache unavailable", zap.String("key", key), zap.Error(err))
	}

	entries, err := r.inner.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal(entries)
	if err != nil {
		return entries, nil
	}
	err = r.mc.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(ecosystemCacheTTL.Seconds()),
	})
	if err != nil {
		zap.L().Debug("failed to cache ecosystem entries", zap.String("key", key), zap.Error(err))
	}
	return entries, nil
}
