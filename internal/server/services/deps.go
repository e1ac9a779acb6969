package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/logging"
	"github.com/dmitrijs2005/paperkeeper/internal/server/cache"
	"github.com/dmitrijs2005/paperkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/paperkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DeletedMessage is returned by delete procedures on success.
const DeletedMessage = "successfully deleted"

// Library bundles what the category and paper procedures share.
type Library struct {
	DB          *sql.DB
	RepoManager repomanager.RepositoryManager
	Cache       *cache.Accessor
	Limiter     *ratelimit.Guard
	Logger      logging.Logger
}

// invalidate drops keys after a committed mutation. A failure leaves stale
// snapshots until their TTL and is only logged.
func (l *Library) invalidate(ctx context.Context, keys ...string) {
	if err := l.Cache.Invalidate(ctx, keys...); err != nil {
		l.Logger.Error(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

// canonicalID returns id in canonical UUID form. Every row id is a UUID, so
// anything else names no row and is common.ErrorNotFound.
func canonicalID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", common.ErrorNotFound
	}
	return u.String(), nil
}

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", common.ErrorBadRequest, field)
	}
	return v, nil
}

// trimPatchText validates an optional text patch field. Nil stays nil.
func trimPatchText(field string, v *string, required bool) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if required && t == "" {
		return nil, fmt.Errorf("%w: %s must not be empty", common.ErrorBadRequest, field)
	}
	return &t, nil
}
