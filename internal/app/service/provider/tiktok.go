package provider

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// TikTokProvider synthesizes metrics from uniform random draws. Two syncs of
// the same handle on the same day produce different values; that is expected
// and part of the provider contract's looseness.
type TikTokProvider struct{}

func NewTikTokProvider() *TikTokProvider {
	return &TikTokProvider{}
}

func (p *TikTokProvider) Name() types.Platform {
	return types.PlatformTikTok
}

const tiktokPostCount = 3

func (p *TikTokProvider) Sync(ctx context.Context, handle string) (*SyncResult, error) {
	now := time.Now()

	res := &SyncResult{
		DailyMetric: DailyMetricData{
			Followers:        rand.Int64N(10000),
			TotalViews:       rand.Int64N(500000),
			TotalEngagements: rand.Int64N(25000),
			ProfileViews:     rand.Int64N(5000),
		},
		Audience: AudienceData{
			Gender: GenderData{
				Male:   rand.Float64() * 100,
				Female: rand.Float64() * 100,
				Other:  rand.Float64() * 5,
			},
			Age: map[string]float64{
				"13-17": rand.Float64() * 15,
				"18-24": rand.Float64() * 35,
				"25-34": rand.Float64() * 30,
				"35-44": rand.Float64() * 15,
				"45+":   rand.Float64() * 5,
			},
			Countries: map[string]float64{
				"ZA": rand.Float64()*80 + 10,
				"NG": rand.Float64() * 10,
				"GB": rand.Float64() * 5,
			},
		},
	}

	for i := 0; i < tiktokPostCount; i++ {
		postID := fmt.Sprintf("%s_%d_%d", handle, now.UnixMilli(), i)
		postURL := fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", handle, postID)
		res.Posts = append(res.Posts, PostData{
			ID:          postID,
			Content:     fmt.Sprintf("This is a mock post #%d for %s", i, handle),
			MediaURL:    fmt.Sprintf("https://picsum.photos/seed/%s/400/600", postID),
			PostURL:     &postURL,
			PublishedAt: now,
			Metrics: PostMetricData{
				Views:       rand.Int64N(100000),
				Likes:       rand.Int64N(10000),
				Comments:    rand.Int64N(1000),
				Shares:      rand.Int64N(500),
				WatchTime:   rand.Int64N(30),
				VideoLength: rand.Int64N(25) + 5,
			},
		})
	}

	return res, nil
}
