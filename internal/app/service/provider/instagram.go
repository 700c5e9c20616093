package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pulsekit/pulse/pkg/types"
)

// InstagramProvider synthesizes metrics from a seed derived from the handle
// and the current date, so repeated syncs on the same calendar day return
// identical results. The day rolls the seed over.
type InstagramProvider struct{}

func NewInstagramProvider() *InstagramProvider {
	return &InstagramProvider{}
}

func (p *InstagramProvider) Name() types.Platform {
	return types.PlatformInstagram
}

// seedFor hashes a string to a non-negative seed using the classic h*31+c
// rolling hash over 32-bit arithmetic.
func seedFor(handle, suffix string) int64 {
	var h int32
	for _, c := range handle + suffix {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

const instagramPostCount = 3

func (p *InstagramProvider) Sync(ctx context.Context, handle string) (*SyncResult, error) {
	now := time.Now()
	date := dateKey(now)
	seed := seedFor(handle, date)

	res := &SyncResult{
		DailyMetric: DailyMetricData{
			Followers: (seed % 15000) + 1000,
			// Instagram handles don't expose total views the way tiktok does.
			TotalViews:       0,
			TotalEngagements: (seed % 30000) + 2000,
			ProfileViews:     (seed % 8000) + 500,
		},
		Audience: AudienceData{
			Gender: GenderData{
				Male:   float64((seed % 45) + 10),
				Female: float64((seed % 50) + 40),
				Other:  float64(seed % 5),
			},
			Age: map[string]float64{
				"13-17": float64((seed % 10) + 5),
				"18-24": float64((seed % 25) + 20),
				"25-34": float64((seed % 30) + 25),
				"35-44": float64((seed % 20) + 10),
				"45+":   float64((seed % 10) + 5),
			},
			Countries: map[string]float64{
				"ZA": float64((seed % 70) + 20),
				"NG": float64((seed % 10) + 1),
				"US": float64((seed % 5) + 1),
			},
		},
	}

	for i := 0; i < instagramPostCount; i++ {
		postSeed := seedFor(handle, fmt.Sprintf("%s-%d", date, i))
		postID := strconv.FormatInt(postSeed, 10)
		res.Posts = append(res.Posts, PostData{
			ID:       postID,
			Content:  fmt.Sprintf("Mock Instagram post #%d for %s", i, handle),
			MediaURL: fmt.Sprintf("https://picsum.photos/seed/%s/500/500", postID),
			// a few days back
			PublishedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
			Metrics: PostMetricData{
				// for instagram this is closer to "reach"
				Views:    (postSeed % 8000) + 500,
				Likes:    (postSeed % 1000) + 50,
				Comments: (postSeed % 100) + 5,
				// shares, watch time and video length are not public
				Shares:      0,
				WatchTime:   0,
				VideoLength: 0,
			},
		})
	}

	return res, nil
}
