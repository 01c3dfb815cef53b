package calculation

import (
	"github.com/kobiz/taxcalc/internal/domain"
)

// Logger is a minimal leveled logging interface so the engine can emit
// diagnostics without depending on a concrete logging backend.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output. It is the default.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Engine is the calculation engine. It holds an immutable rate table
// snapshot for one tax year; every method is a pure function of its input,
// so concurrent callers need no coordination. Swapping tax years means
// constructing a new Engine, never mutating the table in place.
type Engine struct {
	Rates  *domain.RateTable
	Logger Logger
}

// NewEngine creates an engine bound to the given rate table.
func NewEngine(rates *domain.RateTable) *Engine {
	return &Engine{
		Rates:  rates,
		Logger: NopLogger{},
	}
}

// NewDefaultEngine creates an engine with the built-in 2024 rate table.
func NewDefaultEngine() *Engine {
	return NewEngine(domain.DefaultRateTable2024())
}

// SetLogger replaces the engine logger. A nil logger restores the no-op.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = logger
}
