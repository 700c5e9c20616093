package provider

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTikTokProvider_MetricShape(t *testing.T) {
	p := NewTikTokProvider()

	res, err := p.Sync(context.Background(), "brandx")
	require.NoError(t, err)

	require.GreaterOrEqual(t, res.DailyMetric.Followers, int64(0))
	require.Less(t, res.DailyMetric.Followers, int64(10000))
	require.Less(t, res.DailyMetric.TotalViews, int64(500000))
	require.Less(t, res.DailyMetric.TotalEngagements, int64(25000))
	require.Less(t, res.DailyMetric.ProfileViews, int64(5000))

	require.Len(t, res.Posts, 3)
	for i, post := range res.Posts {
		require.True(t, strings.HasPrefix(post.ID, "brandx_"))
		require.True(t, strings.HasSuffix(post.ID, fmt.Sprintf("_%d", i)))
		require.NotNil(t, post.PostURL)
		require.Contains(t, *post.PostURL, "tiktok.com/@brandx")
		require.GreaterOrEqual(t, post.Metrics.VideoLength, int64(5))
	}
}

// Two same-day syncs yielding different values is expected behavior for this
// provider, not a defect: its output is pure-random by contract.
func TestTikTokProvider_RepeatedSyncsDiffer(t *testing.T) {
	p := NewTikTokProvider()

	first, err := p.Sync(context.Background(), "brandx")
	require.NoError(t, err)
	second, err := p.Sync(context.Background(), "brandx")
	require.NoError(t, err)

	same := first.DailyMetric == second.DailyMetric
	for i := range first.Posts {
		same = same && first.Posts[i].Metrics == second.Posts[i].Metrics
	}
	require.False(t, same, "independent random draws should not repeat across a full result bundle")
}
