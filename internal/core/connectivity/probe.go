package connectivity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	// ErrNoConnectivity is returned when the host has no network reachability at call time.
	ErrNoConnectivity = errors.New("no internet connection")
	// ErrConnectivityUnknown is returned alongside StatusUnknown when the probe itself failed.
	ErrConnectivityUnknown = errors.New("connectivity unknown")
)

// Status is the outcome of a reachability check.
type Status int

const (
	StatusUnknown Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Probe reports whether the host currently has network reachability.
// Check has no side effects. When the underlying query fails it returns
// StatusUnknown and an error wrapping ErrConnectivityUnknown.
type Probe interface {
	Check(ctx context.Context) (Status, error)
}

// InterfaceProbe reports Connected when at least one non-loopback interface is up and has an address.
type InterfaceProbe struct {
	// interfaces is replaced in tests.
	interfaces func() ([]netInterface, error)
}

// netInterface is the subset of net.Interface the probe needs.
type netInterface interface {
	Up() bool
	Loopback() bool
	Addrs() ([]net.Addr, error)
}

type systemInterface struct{ *net.Interface }

func (i systemInterface) Up() bool       { return i.Flags&net.FlagUp != 0 }
func (i systemInterface) Loopback() bool { return i.Flags&net.FlagLoopback != 0 }

// NewInterfaceProbe creates a probe over the host's network interfaces.
func NewInterfaceProbe() *InterfaceProbe {
	return &InterfaceProbe{interfaces: systemInterfaces}
}

func systemInterfaces() ([]netInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]netInterface, 0, len(ifaces))
	for i := range ifaces {
		out = append(out, systemInterface{&ifaces[i]})
	}
	return out, nil
}

// Check implements Probe.
func (p *InterfaceProbe) Check(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return StatusUnknown, err
	}
	ifaces, err := p.interfaces()
	if err != nil {
		return StatusUnknown, fmt.Errorf("%w: list interfaces: %v", ErrConnectivityUnknown, err)
	}
	for _, i := range ifaces {
		if !i.Up() || i.Loopback() {
			continue
		}
		addrs, err := i.Addrs()
		if err != nil {
			continue
		}
		if len(addrs) > 0 {
			return StatusConnected, nil
		}
	}
	return StatusDisconnected, nil
}

// DialProbe reports Connected when a TCP connection to Addr can be opened.
type DialProbe struct {
	Addr    string
	Timeout time.Duration
	dial    func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewDialProbe creates a probe that dials addr (host:port).
func NewDialProbe(addr string, timeout time.Duration) *DialProbe {
	d := &net.Dialer{Timeout: timeout}
	return &DialProbe{Addr: addr, Timeout: timeout, dial: d.DialContext}
}

// Check implements Probe.
func (p *DialProbe) Check(ctx context.Context) (Status, error) {
	if _, _, err := net.SplitHostPort(p.Addr); err != nil {
		return StatusUnknown, fmt.Errorf("%w: probe address %q: %v", ErrConnectivityUnknown, p.Addr, err)
	}
	dialCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	conn, err := p.dial(dialCtx, "tcp", p.Addr)
	if err != nil {
		if ctx.Err() != nil {
			return StatusUnknown, ctx.Err()
		}
		return StatusDisconnected, nil
	}
	conn.Close()
	return StatusConnected, nil
}
