// Package server carries the bot's HTTP surfaces: the Google OAuth consent
// routes (/auth/google/start and /auth/google/redirect), Kubernetes-style
// health probes, and a dedicated Prometheus metrics server.
//
// None of these serve chat traffic; the bot talks to Telegram exclusively
// through long polling.
package server
