package proto

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrClosed  = errors.New("port closed")
	ErrTimeout = errors.New("read timeout")
	ErrShort   = errors.New("short write")
)

// TransportError is an I/O failure on the serial link. It is fatal for the
// session that hit it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func asTransport(op string, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}

// WriteFull writes all of p or fails with a TransportError.
func WriteFull(w Port, p []byte) (int, error) {
	var sent int
	for sent < len(p) {
		n, err := w.Write(p[sent:])
		sent += n
		if err != nil {
			return sent, asTransport("write", err)
		}
		if n == 0 {
			return sent, &TransportError{Op: "write", Err: ErrShort}
		}
	}
	return sent, nil
}

// ReadFull blocks until exactly n bytes arrived. A read returning nothing
// means the port's read timeout expired.
func ReadFull(r Port, n int) ([]byte, error) {
	buf := make([]byte, n)
	var got int
	for got < n {
		m, err := r.Read(buf[got:])
		got += m
		if err != nil {
			return buf[:got], asTransport("read", err)
		}
		if m == 0 {
			return buf[:got], &TransportError{Op: "read", Err: ErrTimeout}
		}
	}
	return buf, nil
}
