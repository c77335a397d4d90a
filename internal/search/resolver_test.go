package search

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlist/internal/cache"
	"moodlist/internal/testutil"
)

// fakeProvider answers with fixed videos or a fixed error, counting calls
type fakeProvider struct {
	name   string
	videos []ResolvedVideo
	err    error
	calls  int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Search(ctx context.Context, query string, maxResults int) ([]ResolvedVideo, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.videos, nil
}

func TestResolve_FirstTierWins(t *testing.T) {
	primary := &fakeProvider{name: "primary", videos: []ResolvedVideo{{ProviderID: "vid-1"}}}
	mirror := &fakeProvider{name: "mirror", videos: []ResolvedVideo{{ProviderID: "vid-2"}}}

	resolver := NewResolver([]VideoProvider{primary, mirror}, nil, 0)
	videos, err := resolver.Resolve(context.Background(), "a song", 5)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "vid-1", videos[0].ProviderID)
	assert.Equal(t, 0, mirror.calls)
}

func TestResolve_FallsThroughOnFailure(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("quota exceeded")}
	secondary := &fakeProvider{name: "secondary", err: errors.New("all instances down")}
	tertiary := &fakeProvider{name: "tertiary", videos: []ResolvedVideo{{ProviderID: "vid-3"}}}

	resolver := NewResolver([]VideoProvider{primary, secondary, tertiary}, nil, 0)
	videos, err := resolver.Resolve(context.Background(), "a song", 5)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "vid-3", videos[0].ProviderID)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestResolve_EmptySuccessDoesNotFallThrough(t *testing.T) {
	primary := &fakeProvider{name: "primary", videos: []ResolvedVideo{}}
	mirror := &fakeProvider{name: "mirror", videos: []ResolvedVideo{{ProviderID: "vid-2"}}}

	resolver := NewResolver([]VideoProvider{primary, mirror}, nil, 0)
	videos, err := resolver.Resolve(context.Background(), "obscure song", 5)
	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Equal(t, 0, mirror.calls)
}

func TestResolve_AllTiersFail(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("quota")}
	mirror := &fakeProvider{name: "mirror", err: errors.New("down")}

	resolver := NewResolver([]VideoProvider{primary, mirror}, nil, 0)
	_, err := resolver.Resolve(context.Background(), "a song", 5)
	require.Error(t, err)

	var exhausted *AllProvidersExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, "a song", exhausted.Query)
	assert.Len(t, exhausted.Failures, 2)
}

func TestResolve_TruncatesProviderOverfetch(t *testing.T) {
	primary := &fakeProvider{name: "primary", videos: []ResolvedVideo{
		{ProviderID: "vid-1"}, {ProviderID: "vid-2"}, {ProviderID: "vid-3"},
	}}

	resolver := NewResolver([]VideoProvider{primary}, nil, 0)
	videos, err := resolver.Resolve(context.Background(), "a song", 2)
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestResolve_DefaultMaxResults(t *testing.T) {
	many := make([]ResolvedVideo, 10)
	for i := range many {
		many[i] = ResolvedVideo{ProviderID: string(rune('a' + i))}
	}
	primary := &fakeProvider{name: "primary", videos: many}

	resolver := NewResolver([]VideoProvider{primary}, nil, 0)
	videos, err := resolver.Resolve(context.Background(), "a song", 0)
	require.NoError(t, err)
	assert.Len(t, videos, defaultMaxResults)
}

func TestResolve_CachesResults(t *testing.T) {
	primary := &fakeProvider{name: "primary", videos: []ResolvedVideo{{ProviderID: "vid-1", Title: "Song"}}}
	resolver := NewResolver([]VideoProvider{primary}, cache.NewMemoryCache(), time.Minute)

	first, err := resolver.Resolve(context.Background(), "a song", 5)
	require.NoError(t, err)

	second, err := resolver.Resolve(context.Background(), "a song", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, primary.calls, "second resolution should be served from cache")
}

// Primary tier down entirely, first mirror instance down, second mirror
// instance serving one hit: the resolver returns exactly that hit.
func TestResolve_CrossTierFallback(t *testing.T) {
	youtube := NewYouTubeProvider(NewRoundRobinSelector(nil), "http://127.0.0.1:0")

	down := deadInstance(t, http.StatusBadGateway)
	live := invidiousInstance(t, testutil.InvidiousVideo("mirror-hit", "Song", "Channel", 190))

	invidious := NewInvidiousProvider([]string{down.URL(), live.URL()})

	resolver := NewResolver([]VideoProvider{youtube, invidious}, nil, 0)
	videos, err := resolver.Resolve(context.Background(), "some song", 1)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "mirror-hit", videos[0].ProviderID)
	assert.Equal(t, 190, videos[0].DurationSeconds)
}

func TestResolve_CacheKeyIncludesMaxResults(t *testing.T) {
	primary := &fakeProvider{name: "primary", videos: []ResolvedVideo{
		{ProviderID: "vid-1"}, {ProviderID: "vid-2"},
	}}
	resolver := NewResolver([]VideoProvider{primary}, cache.NewMemoryCache(), time.Minute)

	one, err := resolver.Resolve(context.Background(), "a song", 1)
	require.NoError(t, err)
	require.Len(t, one, 1)

	two, err := resolver.Resolve(context.Background(), "a song", 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, 2, primary.calls)
}
