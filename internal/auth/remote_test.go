package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebula/internal/api"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

func remoteAgainst(t *testing.T, handler http.HandlerFunc) *RemoteIdentity {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(server.URL, 5*time.Second, logger.NewTestLogger(t))
	return NewRemoteIdentity(client, logger.NewTestLogger(t))
}

func TestRemoteLoadResolvesSessionUser(t *testing.T) {
	r := remoteAgainst(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/auth/profile", req.URL.Path)
		w.Write([]byte(`{"status":"success","data":{"sub":"auth0|abc","email":"a@b.c"}}`))
	})

	require.NoError(t, r.Load(context.Background()))

	user := r.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "auth0|abc", user.Sub)
}

func TestRemoteLoadTreats401AsSignedOut(t *testing.T) {
	r := remoteAgainst(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","message":"no session"}`))
	})

	require.NoError(t, r.Load(context.Background()))
	assert.Nil(t, r.CurrentUser())
}

func TestRemoteLoadTreats404AsSignedOut(t *testing.T) {
	r := remoteAgainst(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":"error","message":"profile not found"}`))
	})

	require.NoError(t, r.Load(context.Background()))
	assert.Nil(t, r.CurrentUser())
}

func TestRemoteLoadSurfacesServerErrors(t *testing.T) {
	r := remoteAgainst(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.Error(t, r.Load(context.Background()))
	assert.Nil(t, r.CurrentUser())
}

func TestRemoteOnChangeFiresAfterLoad(t *testing.T) {
	r := remoteAgainst(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"sub":"auth0|abc"}}`))
	})

	var seen *models.User
	r.OnChange(func(u *models.User) { seen = u })

	require.NoError(t, r.Load(context.Background()))
	require.NotNil(t, seen)
	assert.Equal(t, "auth0|abc", seen.Sub)
}
