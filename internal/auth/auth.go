package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/eshaffer321/fintrack-go/internal/types"
	"github.com/pkg/errors"
)

const (
	loginEndpoint    = "/auth/login"
	registerEndpoint = "/auth/register"
)

// PublicTransport sends requests that need no session
type PublicTransport interface {
	DoPublic(ctx context.Context, method, path string, body interface{}, result interface{}) error
}

// Service handles authentication operations
type Service struct {
	transport PublicTransport
	deviceID  string
	session   *types.Session
	logger    types.Logger
	now       func() time.Time
}

// NewService creates a new auth service. deviceID is recorded on every session it creates.
func NewService(transport PublicTransport, deviceID string, logger types.Logger) *Service {
	return &Service{
		transport: transport,
		deviceID:  deviceID,
		logger:    logger,
		now:       time.Now,
	}
}

// Login performs authentication and stores the resulting session
func (s *Service) Login(ctx context.Context, username, password string) error {
	reqBody := map[string]interface{}{
		"username": username,
		"password": password,
	}

	var loginResp loginResponse
	if err := s.transport.DoPublic(ctx, http.MethodPost, loginEndpoint, reqBody, &loginResp); err != nil {
		return loginError(err)
	}

	if loginResp.Token == "" {
		return errors.New("no token in login response")
	}

	s.session = &types.Session{
		Token:      loginResp.Token,
		UserID:     loginResp.UserID,
		Username:   username,
		ExpiresAt:  s.now().Add(types.DefaultSessionTTL),
		DeviceUUID: s.deviceID,
	}

	if s.logger != nil {
		s.logger.Info("Login successful", "username", username)
	}

	return nil
}

// loginError maps a transport error onto ErrLoginFailed, keeping the server's message
func loginError(err error) error {
	if errors.Is(err, types.ErrNotAuthenticated) {
		return types.ErrLoginFailed
	}

	var apiErr *types.Error
	if errors.As(err, &apiErr) {
		apiErr.Code = "LOGIN_FAILED"
		if apiErr.Err == nil {
			apiErr.Err = types.ErrLoginFailed
		}
		return apiErr
	}

	return errors.Wrap(err, "login request failed")
}

// Register creates a new user. It does not log in. A taken username surfaces as types.ErrConflict.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	reqBody := map[string]interface{}{
		"username": username,
		"email":    email,
		"password": password,
	}

	if err := s.transport.DoPublic(ctx, http.MethodPost, registerEndpoint, reqBody, nil); err != nil {
		var apiErr *types.Error
		if errors.As(err, &apiErr) {
			return apiErr
		}
		return errors.Wrap(err, "register request failed")
	}

	if s.logger != nil {
		s.logger.Info("Registration successful", "username", username)
	}

	return nil
}

// Logout drops the in-memory session and removes the session file at path, if any
func (s *Service) Logout(path string) error {
	s.session = nil

	if path == "" {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove session file")
	}

	if s.logger != nil {
		s.logger.Info("Session cleared", "path", path)
	}

	return nil
}

// GetSession returns the current session
func (s *Service) GetSession() (*types.Session, error) {
	if s.session == nil {
		return nil, types.ErrNotAuthenticated
	}
	return s.session, nil
}

// SetSession sets the current session
func (s *Service) SetSession(session *types.Session) {
	s.session = session
}

// SaveSession saves session to file
func (s *Service) SaveSession(path string) error {
	if s.session == nil {
		return types.ErrNotAuthenticated
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrap(err, "failed to create session directory")
	}

	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	// Write to file with restrictive permissions
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session file")
	}

	if s.logger != nil {
		s.logger.Info("Session saved", "path", path)
	}

	return nil
}

// LoadSession loads session from file
func (s *Service) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrNotAuthenticated
		}
		return errors.Wrap(err, "failed to read session file")
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return errors.Wrap(err, "failed to unmarshal session")
	}

	if session.Token == "" {
		return types.ErrNotAuthenticated
	}

	if !session.Valid(s.now()) {
		return types.ErrSessionExpired
	}

	s.session = &session

	if s.logger != nil {
		s.logger.Info("Session loaded", "path", path, "username", session.Username)
	}

	return nil
}

// loginResponse represents the login API response
type loginResponse struct {
	UserID int64  `json:"userId"`
	Token  string `json:"token"`
}
