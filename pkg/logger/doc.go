// Package logger builds log/slog loggers with environment presets and
// request-scoped attribute extraction, plus attribute helpers that keep
// key names consistent across the codebase.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "leadgen"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "brief accepted", logger.SubmissionID(id))
package logger
