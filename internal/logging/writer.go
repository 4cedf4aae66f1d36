package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every writer and reports all failures together.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

// Write returns len(p) once at least one writer took the whole buffer.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	ok := false
	for _, w := range cw.Writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		ok = true
	}
	if !ok {
		return 0, err
	}
	return len(p), err
}
