package streaming

import (
	"bytes"
	"errors"
	"io"
)

// ErrDone is returned by Next once the underlying stream is exhausted and the
// trailing buffer has been flushed.
var ErrDone = errors.New("stream exhausted")

// LineSplitter turns a continuous chunked byte stream into discrete lines.
// Partial lines are buffered across chunk boundaries; a trailing line without
// a final separator is flushed on EOF. Lines are emitted exactly once, in order.
type LineSplitter struct {
	r       io.Reader
	sep     byte
	buf     bytes.Buffer
	pending [][]byte
	readBuf []byte
	eof     bool
}

// NewLineSplitter creates a splitter over r using '\n' as separator.
func NewLineSplitter(r io.Reader) *LineSplitter {
	return NewLineSplitterSep(r, '\n')
}

// NewLineSplitterSep creates a splitter with a custom single-byte separator.
func NewLineSplitterSep(r io.Reader, sep byte) *LineSplitter {
	return &LineSplitter{
		r:       r,
		sep:     sep,
		readBuf: make([]byte, 4096),
	}
}

// Next returns the next complete line without its separator.
// It returns ErrDone after the final line, or the transport error verbatim
// if the underlying reader fails mid-stream.
func (s *LineSplitter) Next() (string, error) {
	for {
		if len(s.pending) > 0 {
			line := s.pending[0]
			s.pending = s.pending[1:]
			return string(line), nil
		}

		if s.eof {
			if s.buf.Len() > 0 {
				tail := s.buf.String()
				s.buf.Reset()
				return tail, nil
			}
			return "", ErrDone
		}

		n, err := s.r.Read(s.readBuf)
		if n > 0 {
			s.split(s.readBuf[:n])
		}
		if err != nil {
			if err == io.EOF {
				s.eof = true
				continue
			}
			return "", err
		}
	}
}

func (s *LineSplitter) split(chunk []byte) {
	for {
		idx := bytes.IndexByte(chunk, s.sep)
		if idx < 0 {
			s.buf.Write(chunk)
			return
		}
		s.buf.Write(chunk[:idx])
		line := make([]byte, s.buf.Len())
		copy(line, s.buf.Bytes())
		s.pending = append(s.pending, line)
		s.buf.Reset()
		chunk = chunk[idx+1:]
	}
}
