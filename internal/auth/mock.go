package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"nebula/internal/api"
	apperrors "nebula/internal/common/errors"
	"nebula/internal/common/logger"
	"nebula/internal/models"
)

// DemoUser is the fixed identity the mock shim signs in as.
var DemoUser = models.User{
	Sub:           "auth0|123456789",
	Email:         "demo@nebula-mvp.com",
	Name:          "Demo User",
	Picture:       "https://via.placeholder.com/150",
	EmailVerified: true,
	GivenName:     "Demo",
	FamilyName:    "User",
	Nickname:      "demo",
}

// SessionAPI is the slice of the API client the server-backed shim uses.
type SessionAPI interface {
	Login(ctx context.Context) (*api.ProfileResponse, error)
	Logout(ctx context.Context) error
	GetSession(ctx context.Context) (*api.ProfileResponse, error)
}

// MockIdentity is a stand-in identity provider for environments without a
// real one. File-backed by default: the session marker file plays the role
// a cookie plays in a browser. Pointed at a server (NewServerMockIdentity)
// it drives the backend's mock-auth routes instead and the session lives
// in the client's cookie jar. Neither mode is a security boundary.
type MockIdentity struct {
	path   string
	api    SessionAPI
	logger logger.Logger

	mu   sync.RWMutex
	user *models.User

	notifier notifier
}

// NewMockIdentity creates the file-backed shim with its session marker at
// path.
func NewMockIdentity(path string, log logger.Logger) *MockIdentity {
	return &MockIdentity{
		path:   path,
		logger: log.WithFields(map[string]interface{}{"component": "mock-auth"}),
	}
}

// NewServerMockIdentity creates the shim in server-backed mode, driving
// the backend's login/logout/me routes through client.
func NewServerMockIdentity(client SessionAPI, log logger.Logger) *MockIdentity {
	return &MockIdentity{
		api:    client,
		logger: log.WithFields(map[string]interface{}{"component": "mock-auth"}),
	}
}

// Load resolves any persisted session once. File mode: a missing marker
// means signed out, a corrupt one is treated the same and reported.
// Server mode: a 401/404 from the me route means signed out, not an error.
func (m *MockIdentity) Load(ctx context.Context) error {
	if m.api != nil {
		resp, err := m.api.GetSession(ctx)
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
		m.setUser(&resp.Data)
		return nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		m.logger.WithError(err).Warn("session marker unreadable, ignoring", map[string]interface{}{"path": m.path})
		return nil
	}
	m.setUser(&user)
	return nil
}

// Login signs in: server mode opens a session on the backend, file mode
// writes the demo identity to the marker file.
func (m *MockIdentity) Login(ctx context.Context) error {
	if m.api != nil {
		resp, err := m.api.Login(ctx)
		if err != nil {
			return err
		}
		user := resp.Data
		m.setUser(&user)
		m.notifier.notify(&user)
		m.logger.Info("mock login", map[string]interface{}{"sub": user.Sub})
		return nil
	}

	user := DemoUser
	user.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return err
	}

	m.setUser(&user)
	m.notifier.notify(&user)
	m.logger.Info("mock login", map[string]interface{}{"sub": user.Sub})
	return nil
}

// Signup behaves exactly like Login in the mock implementation.
func (m *MockIdentity) Signup(ctx context.Context) error {
	return m.Login(ctx)
}

// Logout signs out: server mode closes the backend session, file mode
// removes the marker.
func (m *MockIdentity) Logout(ctx context.Context) error {
	if m.api != nil {
		if err := m.api.Logout(ctx); err != nil {
			return err
		}
	} else if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	m.setUser(nil)
	m.notifier.notify(nil)
	m.logger.Info("mock logout", nil)
	return nil
}

func (m *MockIdentity) setUser(u *models.User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

func (m *MockIdentity) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *MockIdentity) OnChange(cb func(*models.User)) func() {
	return m.notifier.subscribe(cb)
}
