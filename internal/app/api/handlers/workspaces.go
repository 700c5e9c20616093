package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsekit/pulse/internal/app/service/identity"
	plansvc "github.com/pulsekit/pulse/internal/app/service/plan"
	wssvc "github.com/pulsekit/pulse/internal/app/service/workspace"
	"github.com/pulsekit/pulse/pkg/response"
	"github.com/pulsekit/pulse/pkg/types"
)

type createWorkspaceRequest struct {
	Name     string  `json:"name"`
	Industry *string `json:"industry"`
}

// @Summary      Create workspace
// @Description  Creates a workspace; the caller becomes its sole admin and a Starter billing config is bootstrapped, all in one batch.
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Param        request body createWorkspaceRequest true "Workspace"
// @Success      201  {object}  models.Workspace
// @Failure      400  {object}  response.Error
// @Failure      401  {object}  response.Error
// @Router       /api/v1/workspaces [post]
func ApiCreateWorkspace(verifier identity.TokenVerifier, ws *wssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}

		ctx := c.Request.Context()
		userID, err := verifier.Verify(ctx, token)
		if err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		var req createWorkspaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err("Invalid request body"))
			return
		}

		created, err := ws.Create(ctx, userID, req.Name, req.Industry)
		if err != nil {
			if errors.Is(err, wssvc.ErrInvalidName) {
				c.JSON(http.StatusBadRequest, response.Err("Missing workspace name"))
				return
			}
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

type addMemberRequest struct {
	UserID string     `json:"user_id"`
	Role   types.Role `json:"role"`
}

// @Summary      Add member
// @Description  Grants a user a role in the workspace. Admin only.
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Param        id      path  string            true "Workspace id"
// @Param        request body  addMemberRequest  true "Member"
// @Success      201  {object}  models.Member
// @Router       /api/v1/workspaces/{id}/members [post]
func ApiAddMember(gate identity.Authorizer, ws *wssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortNoToken(c)
			return
		}
		workspaceID := c.Param("id")

		ctx := c.Request.Context()
		if _, err := gate.Authorize(ctx, token, workspaceID, types.RoleAdmin); err != nil {
			if !abortAuthError(c, err) {
				abortInternal(c, err)
			}
			return
		}

		var req addMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, response.Err("Missing user_id or role"))
			return
		}

		member, err := ws.AddMember(ctx, workspaceID, req.UserID, req.Role)
		if err != nil {
			switch {
			case errors.Is(err, wssvc.ErrInvalidRole):
				c.JSON(http.StatusBadRequest, response.Err("Invalid member role"))
			case errors.Is(err, wssvc.ErrAlreadyMember):
				c.JSON(http.StatusConflict, response.Err("User is already a member"))
			default:
				abortInternal(c, err)
			}
			return
		}
		c.JSON(http.StatusCreated, member)
	}
}

// @Summary      List members
// @Tags         Workspaces
// @Produce      json
// @Param        id  path  string  true "Workspace id"
// @Success      200  {array}  models.Member
// @Router       /api/v1/workspaces/{id}/members [get]
func ApiListMembers(gate identity.Authorizer, ws *wssvc.Service) gin.HandlerFunc {
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

		members, err := ws.ListMembers(ctx, workspaceID)
		if err != nil {
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, members)
	}
}

// @Summary      Workspace usage
// @Description  Returns the workspace's plan, its limits and live-computed usage.
// @Tags         Workspaces
// @Produce      json
// @Param        id  path  string  true "Workspace id"
// @Success      200  {object}  plan.Evaluation
// @Router       /api/v1/workspaces/{id}/usage [get]
func ApiWorkspaceUsage(gate identity.Authorizer, evaluator plansvc.Evaluator) gin.HandlerFunc {
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

		ev, err := evaluator.EvaluateUsage(ctx, workspaceID)
		if err != nil {
			abortInternal(c, err)
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

func RegisterWorkspaceRoutes(r gin.IRouter, verifier identity.TokenVerifier, gate identity.Authorizer, ws *wssvc.Service, evaluator plansvc.Evaluator) {
	r.POST("/workspaces", ApiCreateWorkspace(verifier, ws))
	r.POST("/workspaces/:id/members", ApiAddMember(gate, ws))
	r.GET("/workspaces/:id/members", ApiListMembers(gate, ws))
	r.GET("/workspaces/:id/usage", ApiWorkspaceUsage(gate, evaluator))
}
