package usecase

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

// CachedLocator memoizes host group lookups of another locator.
type CachedLocator struct {
	next  domain.HostGroupLocator
	cache *cache.Cache
}

func NewCachedLocator(next domain.HostGroupLocator, ttl time.Duration) *CachedLocator {
	return &CachedLocator{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (l *CachedLocator) Locate(ctx context.Context, hostGroupID string) (string, error) {
	if key, ok := l.cache.Get(hostGroupID); ok {
		return key.(string), nil
	}
	key, err := l.next.Locate(ctx, hostGroupID)
	if err != nil {
		return "", err
	}
	l.cache.SetDefault(hostGroupID, key)
	return key, nil
}

// IdentityLocator stores every host group under its own identifier.
type IdentityLocator struct{}

func (IdentityLocator) Locate(_ context.Context, hostGroupID string) (string, error) {
	return hostGroupID, nil
}
