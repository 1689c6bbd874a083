package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chms-be/pkg/apperrors"
	"chms-be/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log, err := logger.New("error")
	require.NoError(t, err)

	return NewClient(server.URL, "service-key", log), server
}

func TestClient_RPC_Success(t *testing.T) {
	var gotPath, gotAuth, gotAPIKey string
	var gotParams map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotParams)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"removed": true}`))
	})

	var result struct {
		Removed bool `json:"removed"`
	}
	err := client.RPC(context.Background(), "remove_church_member",
		map[string]interface{}{"church_id": "c1", "user_id": "u1"}, &result)

	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/rpc/remove_church_member", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotAPIKey)
	assert.Equal(t, "c1", gotParams["church_id"])
	assert.True(t, result.Removed)
}

func TestClient_RPC_NilParamsAndResult(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "{}", string(body))
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.RPC(context.Background(), "decline_membership_request", nil, nil)
	assert.NoError(t, err)
}

func TestClient_RPC_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"not allowed"}`))
	})

	err := client.RPC(context.Background(), "remove_church_member", nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(err))
}

func TestClient_UploadObject(t *testing.T) {
	var gotPath, gotContentType, gotUpsert string
	var gotBody []byte

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotUpsert = r.Header.Get("x-upsert")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	err := client.UploadObject(context.Background(), "team-documents", "t1/abc-setlist.pdf", "application/pdf", []byte("pdf-bytes"))

	require.NoError(t, err)
	assert.Contains(t, gotPath, "/storage/v1/object/team-documents/")
	assert.Equal(t, "application/pdf", gotContentType)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, []byte("pdf-bytes"), gotBody)
}

func TestClient_UploadObject_DefaultContentType(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	})

	err := client.UploadObject(context.Background(), "team-documents", "t1/file", "", []byte("data"))
	assert.NoError(t, err)
}

func TestClient_DeleteObject_Error(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteObject(context.Background(), "team-documents", "t1/missing")
	assert.Error(t, err)
}

func TestClient_CreateSignedURL(t *testing.T) {
	var gotExpiresIn float64

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		gotExpiresIn = payload["expiresIn"].(float64)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"signedURL":"/object/sign/team-documents/t1/file?token=xyz"}`))
	})

	url, err := client.CreateSignedURL(context.Background(), "team-documents", "t1/file", time.Hour)

	require.NoError(t, err)
	assert.Equal(t, float64(3600), gotExpiresIn)
	assert.Equal(t, server.URL+"/storage/v1/object/sign/team-documents/t1/file?token=xyz", url)
}
