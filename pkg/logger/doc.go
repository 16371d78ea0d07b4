// Package logger builds configured slog loggers for the SDK and the
// applications embedding it.
//
// The decision pipeline logs every branch it takes; those messages are part
// of the SDK's observable behavior, so hosts usually want them routed
// through their own handler. This package covers the common cases: explicit
// options for programmatic setup and an environment-driven constructor for
// twelve-factor deployments.
//
// # Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithAttr(slog.String("service", "checkout")),
//	)
//
//	svc := decision.New(cfg, decision.WithLogger(log))
//
// NewFromEnv reads EXPKIT_LOG_LEVEL and EXPKIT_LOG_FORMAT instead.
package logger
