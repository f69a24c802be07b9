// Package logger builds the *slog.Logger used across notifykit.
//
// New assembles a JSON or text handler from functional options and wraps it
// with a decorator that pulls request-scoped values (for example the wizard
// session id) out of context.Context on every record.
//
// Attribute helpers in attr.go keep key names consistent between packages:
//
//	log := logger.New(logger.WithEnvironment(cfg.AppEnv, "notifywizard"))
//	log.LogAttrs(ctx, slog.LevelInfo, "notification sent",
//	    logger.TemplateID(id),
//	    logger.RecipientCount(n),
//	)
package logger
