// Package logger is the public API of pipelog. Most users only need to
// import this package.
//
// A Logger checks each call against a compiled directive specification,
// renders accepted records into a bounded entry buffer and hands the
// finished line to its Exchange, which writes it to the sink either
// directly or through a background consumer:
//
//	log := logger.NewBuilder().
//	    WithSpec("info,app/store=debug").
//	    WithWriter(os.Stderr).
//	    Build()
//	defer log.Async().End()
//
//	log.Info("ready", logger.Int("port", 8080))
//
// Unless bound to a target with Named or WithTarget, a Logger uses the
// import path of the calling package as the target, so directives such as
// "github.com/acme/app/store=debug" select packages.
//
// A Logger is immutable after construction. With and Named return new
// Loggers that share the parent's Exchange.
//
// Install registers one Logger for the whole process. The package-level
// functions Info, Errorf and so on log through it, checking MaxLevel
// first; before Install they use a fallback that writes errors to stderr.
package logger
