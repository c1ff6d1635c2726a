package report

import (
	"bytes"
	"io"
)

const (
	tabWidth   = 8
	wrapPrefix = "#   "
)

// WrapWriter is a line-buffering writer that word-wraps text at a fixed
// column and prefixes every emitted line as a comment.
//
// An explicit end of line ("\r" or "\n") flushes the buffer and resets
// the column count. The alert character is forwarded without being
// counted, since it does not normally affect the appearance of the
// output. A tab advances the count to the next tab stop. Anything else
// is buffered; once the count exceeds the width the buffer is broken at
// the last space or tab, or at the limit when there is none.
type WrapWriter struct {
	out    io.Writer
	width  int
	count  int
	buffer []byte
}

// NewWrapWriter creates a WrapWriter emitting to out, wrapping at width
// columns.
func NewWrapWriter(out io.Writer, width int) *WrapWriter {
	return &WrapWriter{out: out, width: width}
}

// Write buffers p, emitting prefixed, wrapped lines as they complete.
func (w *WrapWriter) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := w.put(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (w *WrapWriter) put(c byte) error {
	switch c {
	case '\n', '\r':
		w.buffer = append(w.buffer, c)
		w.count = 0
		if err := w.emit(wrapPrefix); err != nil {
			return err
		}
		err := w.emit(string(w.buffer))
		w.buffer = w.buffer[:0]
		return err

	case '\a':
		return w.emit(string(c))

	case '\t':
		w.buffer = append(w.buffer, c)
		w.count += tabWidth - w.count%tabWidth
		return nil

	default:
		if w.count >= w.width {
			if err := w.breakLine(); err != nil {
				return err
			}
		}
		w.buffer = append(w.buffer, c)
		w.count++
		return nil
	}
}

func (w *WrapWriter) breakLine() error {
	wpos := bytes.LastIndexAny(w.buffer, " \t")
	if err := w.emit(wrapPrefix); err != nil {
		return err
	}
	if wpos >= 0 {
		if err := w.emit(string(w.buffer[:wpos])); err != nil {
			return err
		}
		w.count = len(w.buffer) - wpos - 1
		w.buffer = append(w.buffer[:0], w.buffer[wpos+1:]...)
	} else {
		if err := w.emit(string(w.buffer)); err != nil {
			return err
		}
		w.buffer = w.buffer[:0]
		w.count = 0
	}
	return w.emit("\n")
}

func (w *WrapWriter) emit(s string) error {
	_, err := io.WriteString(w.out, s)
	return err
}
