package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	url         string
	exchangeErr error
	codes       []string
}

func (f *fakeAuthenticator) AuthURL() string {
	return f.url
}

func (f *fakeAuthenticator) Exchange(_ context.Context, code string) error {
	f.codes = append(f.codes, code)
	return f.exchangeErr
}

func TestAuthServerStartRedirectsToConsentURL(t *testing.T) {
	auth := &fakeAuthenticator{url: "https://accounts.google.com/o/oauth2/auth?state=x"}
	srv := NewAuthServer(auth, nil, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google/start", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, auth.url, rec.Header().Get("Location"))
}

func TestAuthServerRedirect(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		exchangeErr error
		wantStatus  int
		wantCodes   []string
	}{
		{
			name:       "exchanges the code",
			target:     "/auth/google/redirect?code=abc123",
			wantStatus: http.StatusOK,
			wantCodes:  []string{"abc123"},
		},
		{
			name:       "missing code",
			target:     "/auth/google/redirect",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:        "exchange failure",
			target:      "/auth/google/redirect?code=abc123",
			exchangeErr: errors.New("invalid_grant"),
			wantStatus:  http.StatusInternalServerError,
			wantCodes:   []string{"abc123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthenticator{exchangeErr: tt.exchangeErr}
			srv := NewAuthServer(auth, nil, nil)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCodes, auth.codes)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "complete", rec.Body.String())
			}
		})
	}
}

func TestAuthServerMountsHealthProbes(t *testing.T) {
	health := NewHealthChecker()
	srv := NewAuthServer(&fakeAuthenticator{}, health, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
