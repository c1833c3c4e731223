package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	TraceIDKey = "trace_id"

	FieldFunc   = "func"
	FieldEvent  = "event"
	FieldResult = "result"
	FieldParams = "params"
	FieldTrace  = "trace_id"
)

func effectiveLevel(l zerolog.Logger) zerolog.Level {
	lvl := l.GetLevel()
	if g := zerolog.GlobalLevel(); g > lvl {
		lvl = g
	}
	return lvl
}

func addParams(e *zerolog.Event, level zerolog.Level, params map[string]any) *zerolog.Event {
	if len(params) == 0 {
		return e
	}
	d := zerolog.Dict()
	for k, v := range params {
		switch o := v.(type) {
		case ObjectWithLevel:
			d.Object(k, WithLevel(level, o))
		case error:
			d.AnErr(k, o)
		default:
			d.Interface(k, v)
		}
	}
	return e.Dict(FieldParams, d)
}

// Enter returns a logger bound to fn and the trace id carried by ctx, and logs the call at debug.
func Enter(ctx context.Context, fn string, params map[string]any) zerolog.Logger {
	lc := log.Logger.With().Str(FieldFunc, fn)
	if ctx != nil {
		if id, ok := ctx.Value(TraceIDKey).(string); ok && id != "" {
			lc = lc.Str(FieldTrace, id)
		}
	}
	logg := lc.Logger()
	if e := logg.Debug(); e.Enabled() {
		addParams(e.Str(FieldEvent, "enter"), effectiveLevel(logg), params).Msg("")
	}
	return logg
}

func Exit(logg zerolog.Logger, result string, params map[string]any) {
	if e := logg.Debug(); e.Enabled() {
		addParams(e.Str(FieldEvent, "exit").Str(FieldResult, result), effectiveLevel(logg), params).Msg("")
	}
}

func ExitErr(logg zerolog.Logger, err error) {
	ExitErrParams(logg, err, nil)
}

func ExitErrParams(logg zerolog.Logger, err error, params map[string]any) {
	addParams(logg.Error().Err(err).Str(FieldEvent, "exit").Str(FieldResult, "error"), effectiveLevel(logg), params).Msg("")
}

// ErrorContinue logs err without leaving the current function.
func ErrorContinue(logg zerolog.Logger, err error, params map[string]any) {
	addParams(logg.Warn().Err(err).Str(FieldEvent, "continue"), effectiveLevel(logg), params).Msg("")
}

func Info(fn, event, result, msg string, params map[string]any) {
	addParams(log.Logger.Info().Str(FieldFunc, fn).Str(FieldEvent, event).Str(FieldResult, result), effectiveLevel(log.Logger), params).Msg(msg)
}

func Error(fn, event string, err error, params map[string]any) {
	addParams(log.Logger.Error().Err(err).Str(FieldFunc, fn).Str(FieldEvent, event), effectiveLevel(log.Logger), params).Msg("")
}

// Detach returns a background context that keeps only the trace id of ctx.
func Detach(ctx context.Context) context.Context {
	out := context.Background()
	if ctx == nil {
		return out
	}
	if id, ok := ctx.Value(TraceIDKey).(string); ok && id != "" {
		out = context.WithValue(out, TraceIDKey, id)
	}
	return out
}
