package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Valid(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"nil session", nil, false},
		{"no token", &Session{ExpiresAt: now.Add(time.Hour)}, false},
		{"not expired", &Session{Token: "t", ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", &Session{Token: "t", ExpiresAt: now.Add(-time.Second)}, false},
		{"no expiry", &Session{Token: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Valid(now))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Code: "CONFLICT", Message: "account has transactions", StatusCode: 409, Err: ErrConflict}

	assert.Equal(t, "account has transactions", err.Error())
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "error: TIMEOUT", (&Error{Code: "TIMEOUT"}).Error())
}
