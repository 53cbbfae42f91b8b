package signalloop

import (
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// NewDefaultProductionLogger builds a Logger backed by stumpy, the JSON
// logiface backend from the same toolkit this package's event loop is
// modeled on. Output goes to stderr, one JSON object per line.
func NewDefaultProductionLogger() Logger {
	writer := logiface.WriterFunc[*stumpy.Event](func(e *stumpy.Event) error {
		b := e.Bytes()
		b = append(b, '\n')
		_, err := os.Stderr.Write(b)
		return err
	})
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(),
		stumpy.L.WithWriter(writer),
	)
	return NewLogifaceLogger(logger)
}
