package proto

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// BaudRate is fixed by the display module firmware.
const BaudRate = 115200

const DefaultReadTimeout = 3 * time.Second

// Port is the byte pipe a link talks over. serial.Port satisfies it.
type Port interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error
}

type Options struct {
	DTR bool
	RTS bool
	// ReadTimeout bounds every read; zero blocks forever.
	ReadTimeout time.Duration
}

func DefaultOptions() *Options {
	return &Options{ReadTimeout: DefaultReadTimeout}
}

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

// Serial is the serial Transport. name is either a device path or a
// fragment of one, resolved against the ports present on the host.
type Serial struct {
	name string
	path string
	port serial.Port
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (s *Serial) resolve() (string, error) {
	ports, err := s.Ports()
	if err != nil {
		return "", err
	}

	var matched string
	for _, name := range ports {
		if name == s.name {
			return name, nil
		}
		if matched == "" && strings.Contains(name, s.name) {
			matched = name
		}
	}
	if matched != "" {
		return matched, nil
	}

	// some platforms do not enumerate on-board UARTs
	if strings.HasPrefix(s.name, "/") {
		return s.name, nil
	}

	return "", errors.Errorf("serial port %s not found", s.name)
}

func (s *Serial) Open(opts *Options) error {
	if s.port != nil {
		return nil
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	path, err := s.resolve()
	if err != nil {
		return &TransportError{Op: "open", Err: err}
	}

	port, err := serial.Open(path, &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return &TransportError{Op: "open", Err: err}
	}

	setup := func() error {
		if err := port.SetDTR(opts.DTR); err != nil {
			return err
		}
		if err := port.SetRTS(opts.RTS); err != nil {
			return err
		}
		timeout := serial.NoTimeout
		if opts.ReadTimeout > 0 {
			timeout = opts.ReadTimeout
		}
		return port.SetReadTimeout(timeout)
	}
	if err := setup(); err != nil {
		_ = port.Close()
		return &TransportError{Op: "open", Err: err}
	}

	s.path = path
	s.port = port
	return nil
}

// Path is the device the port was opened on, empty before Open.
func (s *Serial) Path() string {
	return s.path
}

func (s *Serial) IsOpen() bool {
	return s.port != nil
}

// Close releases the OS handle. Closing a closed Serial does nothing.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	if err != nil {
		return &TransportError{Op: "close", Err: err}
	}
	return nil
}

func (s *Serial) Read(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, &TransportError{Op: "read", Err: ErrClosed}
	}
	n, err = s.port.Read(p)
	if err != nil {
		return n, &TransportError{Op: "read", Err: err}
	}
	return n, nil
}

func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, &TransportError{Op: "write", Err: ErrClosed}
	}
	n, err = s.port.Write(p)
	if err != nil {
		return n, &TransportError{Op: "write", Err: err}
	}
	return n, nil
}
