package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	connsvc "github.com/pulsekit/pulse/internal/app/service/connection"
	"github.com/pulsekit/pulse/internal/app/service/identity"
	"github.com/pulsekit/pulse/pkg/response"
	"github.com/pulsekit/pulse/pkg/types"
)

type createConnectionRequest struct {
	Handle         string               `json:"handle"`
	Platform       types.Platform       `json:"platform"`
	ConnectionType types.ConnectionType `json:"connection_type"`
}

// @Summary      Add connection
// @Description  Tracks a new external account in status pending. Re-checks the plan's connection limit at the point of write.
// @Tags         Connections
// @Accept       json
// @Produce      json
// @Param        id      path  string                   true "Workspace id"
// @Param        request body  createConnectionRequest  true "Connection"
// @Success      201  {object}  models.Connection
// @Failure      402  {object}  response.Error
// @Router       /api/v1/workspaces/{id}/connections [post]
func ApiCreateConnection(gate identity.Authorizer, conns *connsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")

		ctx := c.Request.Context()
		if _, err := gate.Authorize(ctx, token, workspaceID,
			types.RoleAdmin, types.RoleConsultant); err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		var req createConnectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err("Invalid request body"))
			return
		}

		conn, err := conns.Create(ctx, workspaceID, connsvc.CreateParams{
			Handle:         req.Handle,
			Platform:       req.Platform,
			ConnectionType: req.ConnectionType,
		})
		if err != nil {
			switch {
			case errors.Is(err, connsvc.ErrInvalidHandle), errors.Is(err, connsvc.ErrInvalidPlatform):
				c.JSON(http.StatusBadRequest, response.ErrDetails("Invalid connection", err))
			case errors.Is(err, connsvc.ErrLimitReached):
				c.JSON(http.StatusPaymentRequired, response.Err("Connection limit reached for current plan"))
			default:
				abortInternal(c, err)
			}
			return
		}
		c.JSON(http.StatusCreated, conn)
	}
}

// @Summary      List connections
// @Tags         Connections
// @Produce      json
// @Param        id  path  string  true "Workspace id"
// @Success      200  {array}  models.Connection
// @Router       /api/v1/workspaces/{id}/connections [get]
func ApiListConnections(gate identity.Authorizer, conns *connsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")

		ctx := c.Request.Context()
		if _, err := gate.Authorize(ctx, token, workspaceID); err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		list, err := conns.List(ctx, workspaceID)
		if err != nil {
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// @Summary      Delete connection
// @Tags         Connections
// @Produce      json
// @Param        id            path  string  true "Workspace id"
// @Param        connectionId  path  string  true "Connection id"
// @Success      200  {object}  response.Message
// @Failure      404  {object}  response.Error
// @Router       /api/v1/workspaces/{id}/connections/{connectionId} [delete]
func ApiDeleteConnection(gate identity.Authorizer, conns *connsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")
		connectionID := c.Param("connectionId")

		ctx := c.Request.Context()
		if _, err := gate.Authorize(ctx, token, workspaceID,
			types.RoleAdmin, types.RoleConsultant); err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		if err := conns.Delete(ctx, workspaceID, connectionID); err != nil {
			if errors.Is(err, connsvc.ErrNotFound) {
				c.JSON(http.StatusNotFound, response.Err("Connection not found"))
				return
			}
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Msg("Connection deleted"))
	}
}

func RegisterConnectionRoutes(r gin.IRouter, gate identity.Authorizer, conns *connsvc.Service) {
	r.POST("/workspaces/:id/connections", ApiCreateConnection(gate, conns))
	r.GET("/workspaces/:id/connections", ApiListConnections(gate, conns))
	r.DELETE("/workspaces/:id/connections/:connectionId", ApiDeleteConnection(gate, conns))
}
