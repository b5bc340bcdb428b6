// Package logger builds structured slog loggers with context-aware attribute
// injection.
//
// The returned logger is a regular *slog.Logger; the only addition is a
// decorating handler that asks registered ContextExtractor functions for
// request-scoped attributes (tenant ID, request ID) at log time:
//
//	log := logger.New(
//		logger.WithProduction("ovenkit"),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "product created") // carries tenant_id automatically
package logger
