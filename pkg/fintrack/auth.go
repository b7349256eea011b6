package fintrack

import (
	"context"

	"github.com/eshaffer321/fintrack-go/internal/auth"
	internalTypes "github.com/eshaffer321/fintrack-go/internal/types"
)

// authService implements the AuthService interface
type authService struct {
	client  *Client
	service *auth.Service
}

// newAuthService creates a new auth service
func newAuthService(client *Client) *authService {
	var logger internalTypes.Logger
	if client.options.Logger != nil {
		logger = client.options.Logger
	}
	return &authService{
		client:  client,
		service: auth.NewService(client.transport, client.deviceID, logger),
	}
}

// convertSession converts internal types.Session to fintrack.Session
func (a *authService) convertSession(s *internalTypes.Session) *Session {
	if s == nil {
		return nil
	}
	return &Session{
		Token:      s.Token,
		UserID:     s.UserID,
		Username:   s.Username,
		ExpiresAt:  s.ExpiresAt,
		DeviceUUID: s.DeviceUUID,
	}
}

// Login performs authentication
func (a *authService) Login(ctx context.Context, username, password string) error {
	form := &LoginParams{Username: username, Password: password}
	if err := form.Validate(); err != nil {
		return err
	}

	if err := a.service.Login(ctx, username, password); err != nil {
		return err
	}

	a.install()

	// Save session if configured
	if a.client.options.SessionFile != "" {
		if err := a.service.SaveSession(a.client.options.SessionFile); err != nil && a.client.options.Logger != nil {
			a.client.options.Logger.Warn("Failed to save session", "error", err)
		}
	}

	return nil
}

// Register creates a new user
func (a *authService) Register(ctx context.Context, params *RegisterParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return a.service.Register(ctx, params.Username, params.Email, params.Password)
}

// Logout drops the session on the client and removes the session file
func (a *authService) Logout() error {
	a.client.session = nil
	a.client.transport.SetSession(nil)
	return a.service.Logout(a.client.options.SessionFile)
}

// GetSession returns the current session
func (a *authService) GetSession() (*Session, error) {
	session, err := a.service.GetSession()
	if err != nil {
		return nil, err
	}
	return a.convertSession(session), nil
}

// SaveSession saves session to file
func (a *authService) SaveSession(path string) error {
	return a.service.SaveSession(path)
}

// LoadSession loads session from file
func (a *authService) LoadSession(path string) error {
	if err := a.service.LoadSession(path); err != nil {
		return err
	}
	a.install()
	return nil
}

// install copies the auth service's session onto the client and transport
func (a *authService) install() {
	session, err := a.service.GetSession()
	if err != nil {
		return
	}
	a.client.session = a.convertSession(session)
	a.client.transport.SetSession(session)
}
