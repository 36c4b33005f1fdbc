package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"golek-ongkir/internal/core/apiclient"
	"golek-ongkir/internal/core/cache"
	"golek-ongkir/internal/features/locations/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider records how often each method reached it.
type countingProvider struct {
	calls    map[string]int
	env      apiclient.Envelope[[]domain.Location]
	err      error
	searches []string
}

func newCountingProvider(env apiclient.Envelope[[]domain.Location]) *countingProvider {
	return &countingProvider{calls: map[string]int{}, env: env}
}

func (p *countingProvider) Provinces(context.Context) (apiclient.Envelope[[]domain.Location], error) {
	p.calls["provinces"]++
	return p.env, p.err
}

func (p *countingProvider) Cities(context.Context, int) (apiclient.Envelope[[]domain.Location], error) {
	p.calls["cities"]++
	return p.env, p.err
}

func (p *countingProvider) Districts(context.Context, int) (apiclient.Envelope[[]domain.Location], error) {
	p.calls["districts"]++
	return p.env, p.err
}

func (p *countingProvider) Search(_ context.Context, q string) (apiclient.Envelope[[]domain.SearchResult], error) {
	p.searches = append(p.searches, q)
	return apiclient.Success(apiclient.OKMeta, []domain.SearchResult{}), nil
}

func newCached(t *testing.T, next *countingProvider) (*CachedProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "ongkir:")
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })
	return NewCachedProvider(next, rc, time.Hour), mr
}

func TestCachedProvider_ServesSecondCallFromCache(t *testing.T) {
	next := newCountingProvider(apiclient.Success(apiclient.OKMeta, []domain.Location{{ID: 1, Name: "Bali"}}))
	p, mr := newCached(t, next)
	ctx := context.Background()

	first, err := p.Provinces(ctx)
	require.NoError(t, err)
	second, err := p.Provinces(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls["provinces"])
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("ongkir:provinces"))
	assert.Equal(t, time.Hour, mr.TTL("ongkir:provinces"))
}

func TestCachedProvider_KeysByParent(t *testing.T) {
	next := newCountingProvider(apiclient.Success(apiclient.OKMeta, []domain.Location{{ID: 151, Name: "Jakarta Barat"}}))
	p, mr := newCached(t, next)
	ctx := context.Background()

	_, err := p.Cities(ctx, 6)
	require.NoError(t, err)
	_, err = p.Cities(ctx, 7)
	require.NoError(t, err)
	_, err = p.Districts(ctx, 151)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls["cities"])
	assert.True(t, mr.Exists("ongkir:cities:6"))
	assert.True(t, mr.Exists("ongkir:cities:7"))
	assert.True(t, mr.Exists("ongkir:districts:151"))
}

func TestCachedProvider_DoesNotCacheErrorEnvelopes(t *testing.T) {
	next := newCountingProvider(apiclient.Envelope[[]domain.Location]{Error: true, Status: 500, Message: "down"})
	p, mr := newCached(t, next)
	ctx := context.Background()

	env, err := p.Provinces(ctx)
	require.NoError(t, err)
	assert.True(t, env.Error)

	_, _ = p.Provinces(ctx)
	assert.Equal(t, 2, next.calls["provinces"])
	assert.False(t, mr.Exists("ongkir:provinces"))
}

func TestCachedProvider_DoesNotCacheFailures(t *testing.T) {
	next := newCountingProvider(apiclient.Envelope[[]domain.Location]{})
	next.err = errors.New("boom")
	p, mr := newCached(t, next)

	_, err := p.Provinces(context.Background())
	assert.EqualError(t, err, "boom")
	assert.False(t, mr.Exists("ongkir:provinces"))
}

func TestCachedProvider_FallsThroughWhenRedisIsDown(t *testing.T) {
	next := newCountingProvider(apiclient.Success(apiclient.OKMeta, []domain.Location{{ID: 1, Name: "Bali"}}))
	p, mr := newCached(t, next)
	mr.Close()

	env, err := p.Provinces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bali", env.Data.Data[0].Name)
	assert.Equal(t, 1, next.calls["provinces"])
}

func TestCachedProvider_DiscardsCorruptEntries(t *testing.T) {
	next := newCountingProvider(apiclient.Success(apiclient.OKMeta, []domain.Location{{ID: 1, Name: "Bali"}}))
	p, mr := newCached(t, next)
	require.NoError(t, mr.Set("ongkir:provinces", "not json"))

	env, err := p.Provinces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls["provinces"])
	assert.Equal(t, 1, env.Data.Data[0].ID)
}

func TestCachedProvider_SearchBypassesCache(t *testing.T) {
	next := newCountingProvider(apiclient.Envelope[[]domain.Location]{})
	p, mr := newCached(t, next)

	_, err := p.Search(context.Background(), "ab")
	require.NoError(t, err)
	_, err = p.Search(context.Background(), "ab")
	require.NoError(t, err)

	assert.Equal(t, []string{"ab", "ab"}, next.searches)
	assert.Empty(t, mr.Keys())
}
