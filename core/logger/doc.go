// Package logger builds the application's structured Zap logger.
//
// New returns a logger tuned by Config: the debug level selects the
// development preset, anything else starts from the production preset with
// the level parsed from configuration. Encoding switches between json and
// colored console output.
//
// # Request Correlation
//
// WithRayID pulls the ray ID injected by the rayid middleware out of a
// Fiber context and attaches it as a field, so every log line emitted while
// serving a request can be traced back to it.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
