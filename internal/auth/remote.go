package auth

import (
	"context"
	"errors"
	"sync"

	"nebula/internal/api"
	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// RemoteIdentity resolves the current user from the backend session via
// GET /auth/profile. Session state is read once at Load; there is no
// background refresh or expiry handling.
type RemoteIdentity struct {
	api    *api.Client
	logger logger.Logger

	mu   sync.RWMutex
	user *models.User

	notifier notifier
}

func NewRemoteIdentity(client *api.Client, log logger.Logger) *RemoteIdentity {
	return &RemoteIdentity{
		api:    client,
		logger: log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Load fetches the session profile. A 401/404 means no active session and
// is not an error; anything else is surfaced.
func (r *RemoteIdentity) Load(ctx context.Context) error {
	resp, err := r.api.GetProfile(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		var apiErr *apperrors.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return nil
		}
		return err
	}
	r.mu.Lock()
	r.user = &resp.Data
	r.mu.Unlock()
	r.notifier.notify(r.CurrentUser())
	return nil
}

func (r *RemoteIdentity) CurrentUser() *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.user == nil {
		return nil
	}
	u := *r.user
	return &u
}

func (r *RemoteIdentity) OnChange(cb func(*models.User)) func() {
	return r.notifier.subscribe(cb)
}
