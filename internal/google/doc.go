// Package google handles OAuth2 authentication against Google for the
// calendar client.
//
// Tokens are exchanged once through the consent flow (either the auth HTTP
// endpoints or the auth CLI command) and persisted as JSON in the user cache
// directory, from where every later process start picks them up. Refresh is
// handled transparently by the oauth2 token source.
package google
