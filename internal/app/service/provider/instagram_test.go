package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedFor_StableAndNonNegative(t *testing.T) {
	a := seedFor("brandx", "2026-01-15")
	b := seedFor("brandx", "2026-01-15")
	require.Equal(t, a, b)
	require.GreaterOrEqual(t, a, int64(0))

	// different inputs shift the seed
	require.NotEqual(t, a, seedFor("brandx", "2026-01-16"))
	require.NotEqual(t, a, seedFor("othername", "2026-01-15"))
}

func TestInstagramProvider_SameDaySyncIsDeterministic(t *testing.T) {
	p := NewInstagramProvider()

	first, err := p.Sync(context.Background(), "brandx")
	require.NoError(t, err)
	second, err := p.Sync(context.Background(), "brandx")
	require.NoError(t, err)

	require.Equal(t, first.DailyMetric, second.DailyMetric)
	require.Equal(t, first.Audience, second.Audience)
	require.Len(t, first.Posts, 3)
	require.Len(t, second.Posts, 3)
	for i := range first.Posts {
		require.Equal(t, first.Posts[i].ID, second.Posts[i].ID)
		require.Equal(t, first.Posts[i].Metrics, second.Posts[i].Metrics)
	}
}

func TestInstagramProvider_MetricShape(t *testing.T) {
	p := NewInstagramProvider()

	res, err := p.Sync(context.Background(), "brandx")
	require.NoError(t, err)

	require.GreaterOrEqual(t, res.DailyMetric.Followers, int64(1000))
	require.Less(t, res.DailyMetric.Followers, int64(16000))
	require.Zero(t, res.DailyMetric.TotalViews)
	require.GreaterOrEqual(t, res.DailyMetric.TotalEngagements, int64(2000))
	require.GreaterOrEqual(t, res.DailyMetric.ProfileViews, int64(500))

	require.Contains(t, res.Audience.Age, "18-24")
	require.Contains(t, res.Audience.Countries, "ZA")

	for _, post := range res.Posts {
		require.NotEmpty(t, post.ID)
		require.NotEmpty(t, post.Content)
		// shares and watch time are not public on this platform
		require.Zero(t, post.Metrics.Shares)
		require.Zero(t, post.Metrics.WatchTime)
		require.Zero(t, post.Metrics.VideoLength)
	}
}
