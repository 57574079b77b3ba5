//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"govinda/internal/person/models"
	"govinda/internal/person/store/person"
	id "govinda/pkg/domain"
	"govinda/pkg/platform/sentinel"
	txcontext "govinda/pkg/platform/tx"
	"govinda/pkg/testutil/containers"
)

type PersonCacheSuite struct {
	suite.Suite
	redis    *containers.RedisContainer
	backing  *person.InMemory
	cache    *PersonCache
	ctx      context.Context
	tenantID id.TenantID
	actor    id.UserID
	now      time.Time
}

func TestPersonCacheSuite(t *testing.T) {
	suite.Run(t, new(PersonCacheSuite))
}

func (s *PersonCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.ctx = context.Background()
}

func (s *PersonCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.backing = person.NewInMemory()
	s.cache = New(s.backing, s.redis.Client, WithTTL(time.Minute))
	s.tenantID = id.TenantID(uuid.New())
	s.actor = id.UserID(uuid.New())
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *PersonCacheSuite) stored() *models.Person {
	ahv, err := id.ParseAhvNumber("756.1234.5678.97")
	s.Require().NoError(err)
	p, err := models.NewPerson(id.NewPersonID(), s.tenantID, ahv, "Muster", "Hans",
		id.Date(1985, time.March, 15), id.GenderMale, s.actor, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.cache.Create(s.ctx, p))
	return p
}

func (s *PersonCacheSuite) TestReadThrough() {
	p := s.stored()

	first, err := s.cache.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal("Muster", first.LastName)

	ttl, err := s.redis.Client.TTL(s.ctx, key(s.tenantID, p.ID)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	// A direct write to the backing store is invisible until eviction.
	direct, err := s.backing.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	direct.LastName = "Keller"
	s.Require().NoError(s.backing.Update(s.ctx, direct))

	cached, err := s.cache.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal("Muster", cached.LastName)
}

func (s *PersonCacheSuite) TestUpdateEvicts() {
	p := s.stored()
	_, err := s.cache.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)

	p.LastName = "Meier"
	s.Require().NoError(s.cache.Update(s.ctx, p))

	exists, err := s.redis.Client.Exists(s.ctx, key(s.tenantID, p.ID)).Result()
	s.Require().NoError(err)
	s.Zero(exists)

	fresh, err := s.cache.FindByID(s.ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal("Meier", fresh.LastName)
	s.Equal(int64(1), fresh.Version)
}

func (s *PersonCacheSuite) TestTransactionsBypassCache() {
	p := s.stored()

	runner := txcontext.NewMemoryRunner(s.backing)

	err := runner.RunInTx(s.ctx, func(txCtx context.Context) error {
		_, err := s.cache.FindByID(txCtx, s.tenantID, p.ID)
		return err
	})
	s.Require().NoError(err)

	exists, err := s.redis.Client.Exists(s.ctx, key(s.tenantID, p.ID)).Result()
	s.Require().NoError(err)
	s.Zero(exists)
}

func (s *PersonCacheSuite) TestMissesAreNotCached() {
	_, err := s.cache.FindByID(s.ctx, s.tenantID, id.NewPersonID())
	s.ErrorIs(err, sentinel.ErrNotFound)
	keys, err := s.redis.Client.Keys(s.ctx, keyPrefix+"*").Result()
	s.Require().NoError(err)
	s.Empty(keys)
}
