package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pulsekit/pulse/pkg/config"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// TokenVerifier checks an identity token and returns the user id it carries.
// The identity provider itself is external; this is the only contact surface
// the rest of the service has with it.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// JWTVerifier verifies HS256 tokens signed with the shared identity secret.
type JWTVerifier struct {
	secret []byte
	issuer string
}

func NewJWTVerifier(cfg *config.Config) TokenVerifier {
	return &JWTVerifier{secret: []byte(cfg.Auth.JWTSecret), issuer: cfg.Auth.Issuer}
}

func (v *JWTVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(idToken, &claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims.Subject, nil
}
