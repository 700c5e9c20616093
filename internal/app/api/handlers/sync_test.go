package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pulsekit/pulse/internal/app/service/identity"
	syncsvc "github.com/pulsekit/pulse/internal/app/service/sync"
	"github.com/pulsekit/pulse/pkg/types"
)

type fakeGate struct {
	userID string
	err    error

	gotWorkspaceID string
	gotRoles       []types.Role
}

func (g *fakeGate) Authorize(ctx context.Context, idToken, workspaceID string, requiredRoles ...types.Role) (string, error) {
	g.gotWorkspaceID = workspaceID
	g.gotRoles = requiredRoles
	return g.userID, g.err
}

type fakeOrchestrator struct {
	syncErr error

	synced     bool
	marked     bool
	markedWith error
}

func (o *fakeOrchestrator) SyncConnection(ctx context.Context, workspaceID, connectionID string) error {
	o.synced = true
	return o.syncErr
}

func (o *fakeOrchestrator) MarkSyncError(ctx context.Context, workspaceID, connectionID string, cause error) {
	o.marked = true
	o.markedWith = cause
}

func newSyncRouter(gate identity.Authorizer, orch syncsvc.Orchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSyncRoutes(r, gate, orch)
	return r
}

func doSync(r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sync", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

const validSyncBody = `{"workspaceId":"ws-1","connectionId":"conn-1"}`

func TestApiSyncConnection_NoToken(t *testing.T) {
	r := newSyncRouter(&fakeGate{}, &fakeOrchestrator{})

	w := doSync(r, "", validSyncBody)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Unauthorized: No token provided", errorMessage(t, w))
}

func TestApiSyncConnection_InvalidBody(t *testing.T) {
	r := newSyncRouter(&fakeGate{}, &fakeOrchestrator{})

	w := doSync(r, "tok", `{"workspaceId":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid request body", errorMessage(t, w))
}

func TestApiSyncConnection_MissingIDs(t *testing.T) {
	r := newSyncRouter(&fakeGate{}, &fakeOrchestrator{})

	w := doSync(r, "tok", `{"workspaceId":"ws-1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Missing workspaceId or connectionId", errorMessage(t, w))
}

func TestApiSyncConnection_ExpiredToken(t *testing.T) {
	r := newSyncRouter(&fakeGate{err: identity.ErrTokenExpired}, &fakeOrchestrator{})

	w := doSync(r, "tok", validSyncBody)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Unauthorized: Token expired", errorMessage(t, w))
}

func TestApiSyncConnection_ViewerForbidden(t *testing.T) {
	gate := &fakeGate{err: identity.ErrInsufficientRole}
	orch := &fakeOrchestrator{}
	r := newSyncRouter(gate, orch)

	w := doSync(r, "tok", validSyncBody)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Forbidden: User does not have permission for this action", errorMessage(t, w))
	require.False(t, orch.synced)
	require.Equal(t, []types.Role{types.RoleAdmin, types.RoleConsultant}, gate.gotRoles)
}

func TestApiSyncConnection_NotAMember(t *testing.T) {
	r := newSyncRouter(&fakeGate{err: identity.ErrNotAMember}, &fakeOrchestrator{})

	w := doSync(r, "tok", validSyncBody)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Forbidden: User is not a member of this workspace", errorMessage(t, w))
}

func TestApiSyncConnection_ConnectionNotFound(t *testing.T) {
	orch := &fakeOrchestrator{syncErr: syncsvc.ErrConnectionNotFound}
	r := newSyncRouter(&fakeGate{userID: "user-1"}, orch)

	w := doSync(r, "tok", validSyncBody)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Connection not found", errorMessage(t, w))
	// the failure is still annotated onto the connection
	require.True(t, orch.marked)
	require.ErrorIs(t, orch.markedWith, syncsvc.ErrConnectionNotFound)
}

func TestApiSyncConnection_SyncFailure(t *testing.T) {
	orch := &fakeOrchestrator{syncErr: context.DeadlineExceeded}
	r := newSyncRouter(&fakeGate{userID: "user-1"}, orch)

	w := doSync(r, "tok", validSyncBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal Server Error", errorMessage(t, w))
	require.True(t, orch.marked)
}

func TestApiSyncConnection_Success(t *testing.T) {
	gate := &fakeGate{userID: "user-1"}
	orch := &fakeOrchestrator{}
	r := newSyncRouter(gate, orch)

	w := doSync(r, "tok", validSyncBody)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Sync successful", body.Message)
	require.Equal(t, "ws-1", gate.gotWorkspaceID)
	require.True(t, orch.synced)
	require.False(t, orch.marked)
}
