// Package observability defines the event sink schema traversals report to.
// Business logic records Events; the concrete destination (slog, Prometheus,
// an in-memory recorder for tests) is injected by the caller.
package observability
