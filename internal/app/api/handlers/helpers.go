package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pulsekit/pulse/internal/app/service/identity"
	"github.com/pulsekit/pulse/pkg/response"
)

// bearerToken extracts the id token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

// abortAuthError maps authorization-gate failures onto the 401/403 contract.
// Returns false when err was not an auth failure and the caller must handle it.
func abortAuthError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, identity.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, response.Err("Unauthorized: Token expired"))
	case errors.Is(err, identity.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, response.Err("Unauthorized: Invalid token"))
	case errors.Is(err, identity.ErrNotAMember):
		c.JSON(http.StatusForbidden, response.Err("Forbidden: User is not a member of this workspace"))
	case errors.Is(err, identity.ErrInsufficientRole):
		c.JSON(http.StatusForbidden, response.Err("Forbidden: User does not have permission for this action"))
	default:
		return false
	}
	return true
}

// abortNoToken writes the 401 for a missing/malformed Authorization header.
func abortNoToken(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, response.Err("Unauthorized: No token provided"))
}

// abortInternal writes the generic 500 with failure details.
func abortInternal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, response.ErrDetails("Internal Server Error", err))
}
