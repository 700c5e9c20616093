package sync

import (
	"context"
	"errors"

	"github.com/pulsekit/pulse/internal/app/service/provider"
)

// ErrConnectionNotFound is returned when the target connection does not exist
// in the workspace.
var ErrConnectionNotFound = errors.New("connection not found")

// Orchestrator runs platform syncs for connections. SyncConnection commits
// all resulting documents in one atomic transaction; MarkSyncError is the
// separate, best-effort annotation step callers invoke after a failure.
type Orchestrator interface {
	SyncConnection(ctx context.Context, workspaceID, connectionID string) error
	MarkSyncError(ctx context.Context, workspaceID, connectionID string, cause error)
}

// Error codes persisted in the connection's lastError and surfaced in HTTP
// error payloads.
const (
	CodeSyncFailed          = "SYNC_FAILED"
	CodeConnectionNotFound  = "CONNECTION_NOT_FOUND"
	CodeUnsupportedPlatform = "UNSUPPORTED_PLATFORM"
)

// ErrorCode classifies a sync failure, defaulting to SYNC_FAILED when the
// error carries no code of its own.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrConnectionNotFound):
		return CodeConnectionNotFound
	case errors.Is(err, provider.ErrUnsupportedPlatform):
		return CodeUnsupportedPlatform
	default:
		return CodeSyncFailed
	}
}
