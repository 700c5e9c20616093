package sync

import "go.uber.org/fx"

// Module exposes the sync orchestrator via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
