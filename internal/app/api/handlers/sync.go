package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsekit/pulse/internal/app/service/identity"
	syncsvc "github.com/pulsekit/pulse/internal/app/service/sync"
	"github.com/pulsekit/pulse/pkg/response"
	"github.com/pulsekit/pulse/pkg/types"
)

type syncRequest struct {
	WorkspaceID  string `json:"workspaceId"`
	ConnectionID string `json:"connectionId"`
}

// @Summary      Trigger connection sync
// @Description  Runs a provider sync for one connection and commits all resulting documents atomically.
// @Tags         Sync
// @Accept       json
// @Produce      json
// @Param        request body syncRequest true "Sync request"
// @Success      200  {object}  response.Message
// @Failure      400  {object}  response.Error
// @Failure      401  {object}  response.Error
// @Failure      403  {object}  response.Error
// @Failure      404  {object}  response.Error
// @Failure      500  {object}  response.Error
// @Router       /api/v1/sync [post]
func ApiSyncConnection(gate identity.Authorizer, orch syncsvc.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}

		var req syncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err("Invalid request body"))
			return
		}
		if req.WorkspaceID == "" || req.ConnectionID == "" {
			c.JSON(http.StatusBadRequest, response.Err("Missing workspaceId or connectionId"))
			return
		}

		ctx := c.Request.Context()
		if _, err := gate.Authorize(ctx, token, req.WorkspaceID,
			types.RoleAdmin, types.RoleConsultant); err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		if err := orch.SyncConnection(ctx, req.WorkspaceID, req.ConnectionID); err != nil {
			// Best-effort annotation outside the (already rolled back) sync
			// transaction. Its own failure is swallowed inside.
			orch.MarkSyncError(ctx, req.WorkspaceID, req.ConnectionID, err)

			if errors.Is(err, syncsvc.ErrConnectionNotFound) {
				c.JSON(http.StatusNotFound, response.Err("Connection not found"))
				return
			}
			abortInternal(c, err)
			return
		}

		c.JSON(http.StatusOK, response.Msg("Sync successful"))
	}
}

func RegisterSyncRoutes(r gin.IRouter, gate identity.Authorizer, orch syncsvc.Orchestrator) {
	r.POST("/sync", ApiSyncConnection(gate, orch))
}
