// Package zlog provides a posolve.Observer backed by rs/zerolog, for
// development and tests where engine internals are worth watching but a
// production caller would pass the zero-cost no-op observer instead.
package zlog

import (
	"github.com/rs/zerolog"

	"github.com/posolve-go/posolve/posolve"
	"github.com/posolve-go/posolve/rowstore"
	"github.com/posolve-go/posolve/variable"
)

// Observer logs every posolve.Observer callback at debug level through
// logger. Nil is not a valid logger; use zerolog.Nop() to get a cheap
// silent one without special-casing this type.
type Observer struct {
	logger zerolog.Logger
}

// New returns an Observer that logs through logger.
func New(logger zerolog.Logger) *Observer {
	return &Observer{logger: logger}
}

func (o *Observer) OnPivot(v variable.ID, row rowstore.RowID) {
	o.logger.Debug().
		Int("variable", int(v)).
		Int("row", int(row)).
		Msg("pivot")
}

func (o *Observer) OnExchange(freeVar, boundVar variable.ID) {
	o.logger.Debug().
		Int("free", int(freeVar)).
		Int("bound", int(boundVar)).
		Msg("exchange")
}

func (o *Observer) OnSuspend(v variable.ID, priority float64) {
	o.logger.Debug().
		Int("variable", int(v)).
		Float64("priority", priority).
		Msg("suspend")
}

func (o *Observer) OnFault(f *posolve.Fault) {
	if f == nil {
		return
	}
	o.logger.Warn().
		Str("reason", f.Reason.String()).
		Str("message", f.Message).
		Msg("fault")
}

var _ posolve.Observer = (*Observer)(nil)
