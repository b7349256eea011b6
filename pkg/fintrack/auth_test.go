package fintrack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	internalTypes "github.com/eshaffer321/fintrack-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginValidation(t *testing.T) {
	client, mockTransport := newMockClient()

	err := client.Auth.Login(context.Background(), "", "")

	assert.True(t, IsValidationError(err))
	mockTransport.AssertNotCalled(t, "SetSession", mock.Anything)
}

func TestAuthService_LoginInstallsSession(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("DoPublic", mock.Anything, "POST", "/auth/login",
		mock.MatchedBy(func(body map[string]interface{}) bool {
			return body["username"] == "carol" && body["password"] == "pw1234"
		}),
		mock.Anything,
	).Return(`{"userId": 11, "token": "jwt-carol"}`, nil)
	mockTransport.On("SetSession", mock.MatchedBy(func(s *internalTypes.Session) bool {
		return s != nil && s.Token == "jwt-carol"
	})).Return()

	require.NoError(t, client.Auth.Login(context.Background(), "carol", "pw1234"))

	session, err := client.Auth.GetSession()
	require.NoError(t, err)
	assert.Equal(t, "jwt-carol", session.Token)
	assert.Equal(t, int64(11), client.GetSession().UserID)
	mockTransport.AssertExpectations(t)
}

func TestAuthService_LoginRejected(t *testing.T) {
	client, mockTransport := newMockClient()

	mockTransport.On("DoPublic", mock.Anything, "POST", "/auth/login", mock.Anything, mock.Anything).
		Return(nil, ErrNotAuthenticated)

	err := client.Auth.Login(context.Background(), "carol", "wrong")

	assert.ErrorIs(t, err, ErrLoginFailed)
	assert.Nil(t, client.GetSession())
	mockTransport.AssertNotCalled(t, "SetSession", mock.Anything)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "created",
			status:   http.StatusCreated,
			response: `{"id": 1}`,
			check:    func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:     "username taken",
			status:   http.StatusConflict,
			response: `{"message": "username already exists"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrConflict)
				assert.Contains(t, err.Error(), "username already exists")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/register", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client, err := NewClient(&ClientOptions{BaseURL: server.URL})
			require.NoError(t, err)

			err = client.Auth.Register(context.Background(), &RegisterParams{
				Username: "dave",
				Email:    "dave@example.com",
				Password: "secret1",
			})
			tt.check(t, err)
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	client, _ := newMockClient()

	err := client.Auth.Register(context.Background(), &RegisterParams{Username: "x"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAuthService_LogoutWithoutSession(t *testing.T) {
	client, mockTransport := newMockClient()
	mockTransport.On("SetSession", mock.Anything).Return()

	require.NoError(t, client.Auth.Logout())

	_, err := client.Auth.GetSession()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
