package provider

import "go.uber.org/fx"

// Module exposes the provider registry via Fx.
var Module = fx.Options(
	fx.Provide(NewRegistry),
)
