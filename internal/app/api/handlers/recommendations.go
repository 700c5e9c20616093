package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsekit/pulse/internal/app/service/identity"
	recsvc "github.com/pulsekit/pulse/internal/app/service/recommendation"
	"github.com/pulsekit/pulse/pkg/response"
	"github.com/pulsekit/pulse/pkg/types"
)

type createRecommendationRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// @Summary      Create recommendation
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        id      path  string                       true "Workspace id"
// @Param        request body  createRecommendationRequest  true "Recommendation"
// @Success      201  {object}  models.Recommendation
// @Router       /api/v1/workspaces/{id}/recommendations [post]
func ApiCreateRecommendation(gate identity.Authorizer, recs *recsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")

		ctx := c.Request.Context()
		userID, err := gate.Authorize(ctx, token, workspaceID,
			types.RoleAdmin, types.RoleConsultant)
		if err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		var req createRecommendationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err("Invalid request body"))
			return
		}

		rec, err := recs.Create(ctx, workspaceID, userID, req.Title, req.Body)
		if err != nil {
			if errors.Is(err, recsvc.ErrInvalidTitle) {
				c.JSON(http.StatusBadRequest, response.Err("Missing recommendation title"))
				return
			}
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

// @Summary      Acknowledge recommendation
// @Tags         Recommendations
// @Produce      json
// @Param        id                path  string  true "Workspace id"
// @Param        recommendationId  path  string  true "Recommendation id"
// @Success      200  {object}  response.Message
// @Failure      404  {object}  response.Error
// @Failure      409  {object}  response.Error
// @Router       /api/v1/workspaces/{id}/recommendations/{recommendationId}/ack [post]
func ApiAcknowledgeRecommendation(gate identity.Authorizer, recs *recsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")
		recommendationID := c.Param("recommendationId")

		ctx := c.Request.Context()
		userID, err := gate.Authorize(ctx, token, workspaceID,
			types.RoleAdmin, types.RoleConsultant, types.RoleClient)
		if err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		if err := recs.Acknowledge(ctx, workspaceID, recommendationID, userID); err != nil {
			switch {
			case errors.Is(err, recsvc.ErrNotFound):
				c.JSON(http.StatusNotFound, response.Err("Recommendation not found"))
			case errors.Is(err, recsvc.ErrAlreadyAcknowledged):
				c.JSON(http.StatusConflict, response.Err("Recommendation is already acknowledged"))
			default:
				abortInternal(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, response.Msg("Recommendation acknowledged"))
	}
}

// @Summary      List recommendations
// @Tags         Recommendations
// @Produce      json
// @Param        id  path  string  true "Workspace id"
// @Success      200  {array}  models.Recommendation
// @Router       /api/v1/workspaces/{id}/recommendations [get]
func ApiListRecommendations(gate identity.Authorizer, recs *recsvc.Service) gin.HandlerFunc {
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

		list, err := recs.List(ctx, workspaceID)
		if err != nil {
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func RegisterRecommendationRoutes(r gin.IRouter, gate identity.Authorizer, recs *recsvc.Service) {
	r.POST("/workspaces/:id/recommendations", ApiCreateRecommendation(gate, recs))
	r.POST("/workspaces/:id/recommendations/:recommendationId/ack", ApiAcknowledgeRecommendation(gate, recs))
	r.GET("/workspaces/:id/recommendations", ApiListRecommendations(gate, recs))
}
