package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pulsekit/pulse/pkg/types"
)

func TestRegistry_ResolveKnownPlatforms(t *testing.T) {
	r := NewRegistry(zap.NewNop().Sugar())

	tk, err := r.Resolve(types.PlatformTikTok)
	require.NoError(t, err)
	require.Equal(t, types.PlatformTikTok, tk.Name())

	ig, err := r.Resolve(types.PlatformInstagram)
	require.NoError(t, err)
	require.Equal(t, types.PlatformInstagram, ig.Name())
}

func TestRegistry_ResolveUnknownPlatform(t *testing.T) {
	r := NewRegistry(zap.NewNop().Sugar())

	_, err := r.Resolve(types.Platform("youtube"))
	require.ErrorIs(t, err, ErrUnsupportedPlatform)
}
