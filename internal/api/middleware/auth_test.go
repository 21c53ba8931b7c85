package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todaku-reader/todaku-api/internal/api/shared"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
}

func TestNewHMACVerifierRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHMACVerifier("short")
	assert.Error(t, err)
}

func TestHMACVerifierVerify(t *testing.T) {
	t.Parallel()

	verifier, err := NewHMACVerifier(testSecret)
	require.NoError(t, err)
	userID := uuid.New()

	expired := validClaims(userID.String())
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	noExpiry := validClaims(userID.String())
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(userID.String()))},
		{name: "empty", token: "", wantErr: ErrMissingToken},
		{name: "malformed", token: "not-a-token", wantErr: ErrInvalidToken},
		{
			name:    "wrong secret",
			token:   signToken(t, "ffffffffffffffffffffffffffffffff", jwt.SigningMethodHS256, validClaims(userID.String())),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "wrong algorithm",
			token:   signToken(t, testSecret, jwt.SigningMethodHS512, validClaims(userID.String())),
			wantErr: ErrInvalidToken,
		},
		{name: "expired", token: signToken(t, testSecret, jwt.SigningMethodHS256, expired), wantErr: ErrExpiredToken},
		{name: "no expiry", token: signToken(t, testSecret, jwt.SigningMethodHS256, noExpiry), wantErr: ErrInvalidToken},
		{
			name:    "subject not a uuid",
			token:   signToken(t, testSecret, jwt.SigningMethodHS256, validClaims("reader-42")),
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := verifier.Verify(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

type stubVerifier struct {
	userID uuid.UUID
	err    error
}

func (s stubVerifier) Verify(context.Context, string) (uuid.UUID, error) {
	return s.userID, s.err
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		verifier   TokenVerifier
		wantStatus int
		wantUser   bool
	}{
		{name: "missing header", verifier: stubVerifier{userID: userID}, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", verifier: stubVerifier{userID: userID}, wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", verifier: stubVerifier{userID: userID}, wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer x", verifier: stubVerifier{err: ErrInvalidToken}, wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer x", verifier: stubVerifier{err: ErrExpiredToken}, wantStatus: http.StatusUnauthorized},
		{
			name:       "verifier failure",
			header:     "Bearer x",
			verifier:   stubVerifier{err: errors.New("key store unavailable")},
			wantStatus: http.StatusInternalServerError,
		},
		{name: "valid", header: "Bearer x", verifier: stubVerifier{userID: userID}, wantStatus: http.StatusOK, wantUser: true},
		{name: "lowercase scheme", header: "bearer x", verifier: stubVerifier{userID: userID}, wantStatus: http.StatusOK, wantUser: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = shared.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/lessons/mine", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			NewAuthMiddleware(tt.verifier).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser {
				assert.Equal(t, userID, seen)
			} else {
				assert.Equal(t, uuid.Nil, seen)
			}
		})
	}
}

func TestAuthenticateWithRealVerifier(t *testing.T) {
	t.Parallel()

	verifier, err := NewHMACVerifier(testSecret)
	require.NoError(t, err)
	userID := uuid.New()

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = shared.UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(userID.String())))
	rec := httptest.NewRecorder()
	NewAuthMiddleware(verifier).Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seen)
}
