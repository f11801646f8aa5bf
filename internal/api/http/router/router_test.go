package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpress/identity/internal/model"
	"github.com/quillpress/identity/internal/service"
	"github.com/quillpress/identity/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := testutil.MakeNoopLogger()
	resolver := service.NewResolver(service.NewProfileCache(time.Minute, log), log)
	resolver.Configure(model.Sources{
		FindByHandle: func(ctx context.Context, handle string) (*model.AccountRecord, error) {
			if handle == "bob" {
				return &model.AccountRecord{ID: "u-1", Handle: "bob", DisplayName: "Bob", Role: "admin"}, nil
			}
			return nil, model.ErrNotFound
		},
		FindAll: func(ctx context.Context) ([]model.AccountRecord, error) {
			return []model.AccountRecord{{ID: "u-1", Handle: "bob"}}, nil
		},
		ListProfiles: func(ctx context.Context, filter model.ProfileFilter) ([]model.ProfileRecord, error) {
			return nil, nil
		},
	})

	srv := httptest.NewServer(New(resolver, log).Register())
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_GetUser(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/users/bob")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var identity model.Identity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	assert.Equal(t, "bob", identity.Handle)
	assert.Equal(t, model.IdentitySourceStore, identity.Source)
}

func TestRouter_GetUser_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/users/ghost")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ListUsers(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"bob"}, body["handles"])
}

func TestRouter_ClearCache(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/cache", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/_health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
