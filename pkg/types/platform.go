package types

// Platform identifies the social network a connection tracks.
type Platform string

const (
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

// DefaultPlatform is assumed for connection records created before the
// platform field existed.
const DefaultPlatform = PlatformTikTok

type ConnectionType string

const (
	ConnectionTypeHandle ConnectionType = "handle"
	ConnectionTypeOAuth  ConnectionType = "oauth"
	ConnectionTypeManual ConnectionType = "manual"
)

type ConnectionStatus string

const (
	ConnectionStatusPending ConnectionStatus = "pending"
	ConnectionStatusActive  ConnectionStatus = "active"
	ConnectionStatusError   ConnectionStatus = "error"
)

type PostStatus string

const (
	PostStatusPublished PostStatus = "published"
)

type RecommendationStatus string

const (
	RecommendationStatusOpen         RecommendationStatus = "open"
	RecommendationStatusAcknowledged RecommendationStatus = "acknowledged"
)
