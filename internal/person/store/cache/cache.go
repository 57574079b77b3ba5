// Package cache provides a Redis read-through cache in front of a person store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"govinda/internal/person/models"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/paging"
	txcontext "govinda/pkg/platform/tx"
)

const (
	keyPrefix  = "masterdata:person:"
	DefaultTTL = 5 * time.Minute
)

var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "govinda_person_cache_lookups_total",
	Help: "Person cache lookups by result (hit, miss, error)",
}, []string{"result"})

// Store is the person store being cached.
type Store interface {
	Create(ctx context.Context, p *models.Person) error
	Update(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error)
	FindByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (*models.Person, error)
	ExistsByAhv(ctx context.Context, tenantID id.TenantID, ahv id.AhvNumber) (bool, error)
	TenantOf(ctx context.Context, personID id.PersonID) (id.TenantID, error)
	List(ctx context.Context, tenantID id.TenantID, req paging.Request) (paging.Page[*models.Person], error)
	Search(ctx context.Context, tenantID id.TenantID, criteria models.SearchCriteria, req paging.Request) (paging.Page[*models.Person], error)
	AppendHistory(ctx context.Context, entry *models.PersonHistoryEntry) error
	ListHistory(ctx context.Context, tenantID id.TenantID, personID id.PersonID) ([]*models.PersonHistoryEntry, error)
}

// PersonCache serves FindByID from Redis. Reads inside a transaction always go
// to the store so version checks see committed state. Every write evicts the
// entry immediately and again after commit.
// Redis failures degrade to store reads.
type PersonCache struct {
	Store
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*PersonCache)

func WithTTL(ttl time.Duration) Option {
	return func(c *PersonCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *PersonCache) {
		c.logger = logger
	}
}

func New(store Store, client redis.Cmdable, opts ...Option) *PersonCache {
	c := &PersonCache{Store: store, client: client, ttl: DefaultTTL, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func key(tenantID id.TenantID, personID id.PersonID) string {
	return keyPrefix + tenantID.String() + ":" + personID.String()
}

func (c *PersonCache) FindByID(ctx context.Context, tenantID id.TenantID, personID id.PersonID) (*models.Person, error) {
	if txcontext.InTransaction(ctx) {
		return c.Store.FindByID(ctx, tenantID, personID)
	}

	k := key(tenantID, personID)
	raw, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var p models.Person
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return &p, nil
		}
		cacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		cacheLookups.WithLabelValues("miss").Inc()
	default:
		cacheLookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "person cache read failed", "error", err)
	}

	p, err := c.Store.FindByID(ctx, tenantID, personID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, k, payload, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "person cache write failed", "error", err)
		}
	}
	return p, nil
}

func (c *PersonCache) Update(ctx context.Context, p *models.Person) error {
	if err := c.Store.Update(ctx, p); err != nil {
		return err
	}
	c.evict(ctx, p.TenantID, p.ID)
	return nil
}

func (c *PersonCache) AppendHistory(ctx context.Context, entry *models.PersonHistoryEntry) error {
	if err := c.Store.AppendHistory(ctx, entry); err != nil {
		return err
	}
	c.evict(ctx, entry.TenantID, entry.PersonID)
	return nil
}

func (c *PersonCache) evict(ctx context.Context, tenantID id.TenantID, personID id.PersonID) {
	k := key(tenantID, personID)
	del := func() {
		if err := c.client.Del(context.WithoutCancel(ctx), k).Err(); err != nil {
			c.logger.WarnContext(ctx, "person cache eviction failed", "key", k, "error", err)
		}
	}
	del()
	txcontext.AfterCommit(ctx, del)
}
