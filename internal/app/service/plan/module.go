package plan

import "go.uber.org/fx"

// Module exposes the usage evaluator via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
