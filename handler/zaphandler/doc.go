// Package zaphandler provides a zapcore.Core that feeds a pipeline, so code
// logging through go.uber.org/zap shares the pipeline's filter, formatter
// and sink.
//
// The zap logger name, when set, is the target; otherwise the Core's
// default target is used. Levels above Error (DPanic, Panic, Fatal) are
// emitted as Error and flush the pipeline before zap acts on them.
package zaphandler
