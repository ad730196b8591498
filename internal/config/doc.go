// Package config loads the bot's runtime configuration from environment
// variables and validates the fields the bot cannot run without.
package config
