package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["serve"])
	assert.True(t, names["auth"])
	assert.True(t, names["version"])
}

func TestServeCommandFlags(t *testing.T) {
	cmd := newServeCmd()

	for _, name := range []string{"debug", "http-addr", "metrics-addr"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestServeCommandRequiresConfig(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("ACCEPTED_TELEGRAM_CHAT_IDS", "")

	cmd := newServeCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestAuthCommandRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := loadOAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CLIENT_ID")
}
