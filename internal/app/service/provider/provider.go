package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pulsekit/pulse/pkg/types"
)

// ErrUnsupportedPlatform is returned when no provider is registered for the
// requested platform key.
var ErrUnsupportedPlatform = errors.New("no sync provider registered for platform")

// DailyMetricData is a single day's account-level metrics for a handle.
type DailyMetricData struct {
	Followers        int64
	TotalViews       int64
	TotalEngagements int64
	ProfileViews     int64
}

// AudienceData is the audience composition for a handle on a given day.
// Category percentages are produced independently and are not normalized to
// sum to 100.
type AudienceData struct {
	Gender    GenderData
	Age       map[string]float64
	Countries map[string]float64
}

type GenderData struct {
	Male   float64
	Female float64
	Other  float64
}

// PostMetricData carries per-post engagement numbers. WatchTime and
// VideoLength are seconds and stay zero for platforms that do not expose them.
type PostMetricData struct {
	Views       int64
	Likes       int64
	Comments    int64
	Shares      int64
	WatchTime   int64
	VideoLength int64
}

// PostData is a content item produced by a sync run. ID is generated by the
// provider and must be stable enough that a resync upserts rather than
// duplicates.
type PostData struct {
	ID          string
	Content     string
	MediaURL    string
	PostURL     *string
	PublishedAt time.Time
	Metrics     PostMetricData
}

// SyncResult is the bundle a provider hands the orchestrator for persistence.
type SyncResult struct {
	DailyMetric DailyMetricData
	Audience    AudienceData
	Posts       []PostData
}

// Provider produces one day's metrics for a handle. The contract mandates
// only the result shape: implementations are free to be idempotent for a
// given day (instagram) or not (tiktok), and a real HTTP-backed client must
// be a drop-in replacement.
type Provider interface {
	Name() types.Platform
	Sync(ctx context.Context, handle string) (*SyncResult, error)
}

// Registry resolves providers by platform key.
type Registry struct {
	providers map[types.Platform]Provider
	log       *zap.SugaredLogger
}

func NewRegistry(log *zap.SugaredLogger) *Registry {
	r := &Registry{providers: map[types.Platform]Provider{}, log: log}
	r.register(NewTikTokProvider())
	r.register(NewInstagramProvider())
	return r
}

func (r *Registry) register(p Provider) {
	r.providers[p.Name()] = p
}

func (r *Registry) Resolve(platform types.Platform) (Provider, error) {
	p, ok := r.providers[platform]
	if !ok {
		return nil, ErrUnsupportedPlatform
	}
	return p, nil
}

// dateKey is the daily document key format shared by providers and the sync
// service: the server-local calendar day.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
