package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth wraps the oauth2 configuration and the persisted token for the
// configured Google client.
type OAuth struct {
	conf     *oauth2.Config
	provider TokenProvider
}

// NewOAuth creates an OAuth helper with the default file-backed token
// provider. redirectURL must match one of the redirect URIs registered for
// the Google OAuth client.
func NewOAuth(clientID, clientSecret, redirectURL string) *OAuth {
	return NewOAuthWithProvider(clientID, clientSecret, redirectURL, NewFileTokenProvider())
}

// NewOAuthWithProvider creates an OAuth helper with a caller-supplied token
// provider.
func NewOAuthWithProvider(clientID, clientSecret, redirectURL string, provider TokenProvider) *OAuth {
	return &OAuth{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       Scopes,
		},
		provider: provider,
	}
}

// AuthURL returns the Google consent URL for the configured client. Offline
// access is requested so a refresh token is issued.
func (o *OAuth) AuthURL() string {
	return o.conf.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for tokens and persists them through
// the token provider.
func (o *OAuth) Exchange(ctx context.Context, code string) error {
	token, err := o.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	if err := o.provider.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// HasToken reports whether a stored token exists.
func (o *OAuth) HasToken() bool {
	return o.provider.HasToken()
}

// TokenSource returns an auto-refreshing token source backed by the stored
// token. It fails when no token has been saved yet.
func (o *OAuth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := o.provider.Token(ctx)
	if err != nil {
		return nil, err
	}
	return o.conf.TokenSource(ctx, token), nil
}
