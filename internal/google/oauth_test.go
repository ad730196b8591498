package google

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestFileTokenProviderRoundTrip(t *testing.T) {
	provider := &FileTokenProvider{dir: t.TempDir()}

	assert.False(t, provider.HasToken())

	_, err := provider.Token(context.Background())
	assert.Error(t, err)

	saved := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
	}
	require.NoError(t, provider.SaveToken(saved))
	assert.True(t, provider.HasToken())

	loaded, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
}

func TestAuthURL(t *testing.T) {
	o := NewOAuth("client-id", "client-secret", "http://localhost:3002/auth/google/redirect")
	url := o.AuthURL()

	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
	assert.Contains(t, url, "calendar.events")
}

func TestTokenSourceWithoutToken(t *testing.T) {
	provider := &FileTokenProvider{dir: t.TempDir()}
	o := NewOAuthWithProvider("id", "secret", "http://localhost/redirect", provider)

	assert.False(t, o.HasToken())

	_, err := o.TokenSource(context.Background())
	assert.Error(t, err)
}
