package identity

import "go.uber.org/fx"

// Module exposes the token verifier and the authorization gate via Fx.
var Module = fx.Options(
	fx.Provide(NewJWTVerifier),
	fx.Provide(NewGate),
)
