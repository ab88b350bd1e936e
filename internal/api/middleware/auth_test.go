package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/booklist-api/internal/api/shared"
	"github.com/phrazzld/booklist-api/internal/mocks"
	"github.com/phrazzld/booklist-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
		wantOK bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer   ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"abc.def.ghi", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.want, got, tt.header)
		assert.Equal(t, tt.wantOK, ok, tt.header)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantStatus  int
		wantMessage string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantMessage: MsgMissingToken},
		{name: "wrong scheme", header: "Token abc", wantStatus: http.StatusUnauthorized, wantMessage: MsgMissingToken},
		{
			name: "invalid token", header: "Bearer abc", validateErr: auth.ErrInvalidToken,
			wantStatus: http.StatusForbidden, wantMessage: MsgInvalidToken,
		},
		{
			name: "expired token", header: "Bearer abc", validateErr: auth.ErrExpiredToken,
			wantStatus: http.StatusForbidden, wantMessage: MsgInvalidToken,
		},
		{
			name: "unexpected failure", header: "Bearer abc", validateErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError, wantMessage: "server error - contact support",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			jwtService := &mocks.MockJWTService{ValidateErr: tt.validateErr}
			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodGet, "/book/all", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}

	t.Run("valid token reaches the handler with claims", func(t *testing.T) {
		t.Parallel()
		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{AccountID: 7, Username: "ada", Role: 1},
		}
		var gotID int64
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = shared.GetAccountID(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/book/all", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(7), gotID)
	})
}
