// Package logging provides slog attribute helpers so log entries use
// consistent keys across the codebase, and anonymization for chat
// identifiers so operators can correlate entries without logging raw
// Telegram chat IDs.
package logging
