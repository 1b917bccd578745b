// Package logging provides the process-wide structured logger for emsctl.
//
// It is a thin layer over log/slog: the CLI calls Init once at startup, and
// from then on both the subsystem helpers in this package and every
// library component that captured slog.Default() write through the same
// handler.
//
// # Usage
//
//	logging.Init(logging.LevelInfo, logging.FormatText, os.Stderr)
//
//	logging.Debug("Config", "Loaded configuration from %s", path)
//	logging.Error("Session", err, "Failed to restore session")
//
//	// Library components take a subsystem-tagged *slog.Logger.
//	coord := refresh.NewCoordinator(..., refresh.WithLogger(logging.Logger("Refresh")))
//
// # Secrets
//
// Access and refresh tokens must never be passed to any logging call.
// Components log slot names, request IDs and booleans such as
// has_refresh_token instead.
package logging
