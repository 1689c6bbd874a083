package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chms-be/internal/domain"
	"chms-be/internal/middleware"
	"chms-be/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRPC struct {
	calls int
}

func (s *stubRPC) RPC(ctx context.Context, fn string, params map[string]interface{}, result interface{}) error {
	s.calls++
	return nil
}

func bulkRemoveRequest(t *testing.T, churchID string, body interface{}, claims *domain.AuthClaims) *http.Request {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/churches/"+churchID+"/members/remove", bytes.NewReader(payload))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("churchID", churchID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if claims != nil {
		ctx = context.WithValue(ctx, middleware.UserContextKey, claims)
	}
	return req.WithContext(ctx)
}

func newMemberHandlerForTest(rpc service.RPCCaller) *MemberHandler {
	cache := service.NewCacheService(nil, zap.NewNop())
	return NewMemberHandler(service.NewMemberService(nil, rpc, cache, zap.NewNop()))
}

func TestMemberHandler_BulkRemove_Success(t *testing.T) {
	rpc := &stubRPC{}
	h := newMemberHandlerForTest(rpc)

	req := bulkRemoveRequest(t, "c1",
		BulkRemoveRequest{UserIDs: []string{"u1", "u2"}},
		&domain.AuthClaims{Sub: "me"})
	rec := httptest.NewRecorder()

	h.BulkRemove(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, rpc.calls)

	var resp struct {
		Results []service.RemoveOutcome `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Removed)
	assert.Equal(t, "u1", resp.Results[0].UserID)
}

func TestMemberHandler_BulkRemove_EmptyIDsRejected(t *testing.T) {
	rpc := &stubRPC{}
	h := newMemberHandlerForTest(rpc)

	req := bulkRemoveRequest(t, "c1", BulkRemoveRequest{}, &domain.AuthClaims{Sub: "me"})
	rec := httptest.NewRecorder()

	h.BulkRemove(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, rpc.calls)
}

func TestMemberHandler_BulkRemove_SelfRemovalRejected(t *testing.T) {
	rpc := &stubRPC{}
	h := newMemberHandlerForTest(rpc)

	req := bulkRemoveRequest(t, "c1",
		BulkRemoveRequest{UserIDs: []string{"u1", "me"}},
		&domain.AuthClaims{Sub: "me"})
	rec := httptest.NewRecorder()

	h.BulkRemove(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, rpc.calls, "no removal should run when the acting user is in the list")
}

func TestMemberHandler_BulkRemove_InvalidBody(t *testing.T) {
	h := newMemberHandlerForTest(&stubRPC{})

	req := httptest.NewRequest(http.MethodPost, "/churches/c1/members/remove", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()

	h.BulkRemove(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
