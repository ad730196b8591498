// Package instrumentation wires OpenTelemetry metrics for the bot.
//
// The provider owns the meter provider and exposes a Metrics recorder used
// by the dispatcher and the transport. The default exporter is Prometheus
// (scraped via the dedicated metrics server); OTLP and stdout exporters can
// be selected through configuration. A disabled provider hands out a no-op
// recorder so call sites never need to branch.
package instrumentation
