package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contentsvc "github.com/pulsekit/pulse/internal/app/service/content"
	"github.com/pulsekit/pulse/internal/app/service/identity"
)

// @Summary      List posts
// @Description  Returns the workspace's posts with their metrics, newest first.
// @Tags         Content
// @Produce      json
// @Param        id  path  string  true "Workspace id"
// @Success      200  {array}  content.PostWithMetrics
// @Router       /api/v1/workspaces/{id}/posts [get]
func ApiListPosts(gate identity.Authorizer, posts *contentsvc.Service) gin.HandlerFunc {
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

		list, err := posts.ListPosts(ctx, workspaceID)
		if err != nil {
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func RegisterContentRoutes(r gin.IRouter, gate identity.Authorizer, posts *contentsvc.Service) {
	r.GET("/workspaces/:id/posts", ApiListPosts(gate, posts))
}
