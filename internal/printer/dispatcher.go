package printer

import (
	"github.com/rs/zerolog"
)

// Result is what happened to a dispatched file.
type Result int

const (
	// Printed means the print request was accepted.
	Printed Result = iota
	// Opened means printing failed and the file was opened in the viewer.
	Opened
	// Failed means neither printing nor opening worked.
	Failed
)

func (r Result) String() string {
	switch r {
	case Printed:
		return "printed"
	case Opened:
		return "opened"
	default:
		return "failed"
	}
}

// Dispatcher sends rendered receipts to a backend.
type Dispatcher struct {
	backend Backend
	logger  zerolog.Logger
}

// NewDispatcher creates a dispatcher for backend.
func NewDispatcher(backend Backend, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		backend: backend,
		logger:  logger.With().Str("component", "printer").Str("backend", backend.Name()).Logger(),
	}
}

// Dispatch tries to print path, falling back to opening it. It never fails;
// problems are logged and reflected in the Result.
func (d *Dispatcher) Dispatch(path string) Result {
	printErr := d.backend.Print(path)
	if printErr == nil {
		d.logger.Info().Str("path", path).Msg("sent to printer")
		return Printed
	}
	d.logger.Warn().Err(printErr).Str("path", path).Msg("print failed, opening file instead")

	if err := d.backend.Open(path); err != nil {
		d.logger.Error().Err(err).Str("path", path).Msg("could not open file")
		return Failed
	}
	return Opened
}
