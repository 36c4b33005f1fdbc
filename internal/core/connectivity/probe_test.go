package connectivity

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInterface struct {
	up, loopback bool
	addrs        []net.Addr
	err          error
}

func (f fakeInterface) Up() bool                   { return f.up }
func (f fakeInterface) Loopback() bool             { return f.loopback }
func (f fakeInterface) Addrs() ([]net.Addr, error) { return f.addrs, f.err }

func listing(ifaces ...netInterface) func() ([]netInterface, error) {
	return func() ([]netInterface, error) { return ifaces, nil }
}

var someAddr = &net.IPNet{IP: net.ParseIP("192.168.1.10"), Mask: net.CIDRMask(24, 32)}

func TestInterfaceProbe_Connected(t *testing.T) {
	p := &InterfaceProbe{interfaces: listing(
		fakeInterface{up: true, loopback: true, addrs: []net.Addr{someAddr}},
		fakeInterface{up: true, addrs: []net.Addr{someAddr}},
	)}

	status, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusConnected, status)
}

func TestInterfaceProbe_Disconnected(t *testing.T) {
	p := &InterfaceProbe{interfaces: listing(
		fakeInterface{up: true, loopback: true, addrs: []net.Addr{someAddr}},
		fakeInterface{up: false, addrs: []net.Addr{someAddr}},
		fakeInterface{up: true},
		fakeInterface{up: true, err: errors.New("addr lookup")},
	)}

	status, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDisconnected, status)
}

// The platform query failing is reported as Unknown, never as Connected.
func TestInterfaceProbe_Unknown(t *testing.T) {
	p := &InterfaceProbe{interfaces: func() ([]netInterface, error) {
		return nil, errors.New("netlink unavailable")
	}}

	status, err := p.Check(context.Background())
	assert.Equal(t, StatusUnknown, status)
	assert.ErrorIs(t, err, ErrConnectivityUnknown)
}

func TestInterfaceProbe_System(t *testing.T) {
	status, err := NewInterfaceProbe().Check(context.Background())
	if err != nil {
		assert.Equal(t, StatusUnknown, status)
		return
	}
	assert.Contains(t, []Status{StatusConnected, StatusDisconnected}, status)
}

func TestSystemInterfaces(t *testing.T) {
	want, err := net.Interfaces()
	require.NoError(t, err)

	got, err := systemInterfaces()
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i, iface := range got {
		assert.Equal(t, want[i].Flags&net.FlagUp != 0, iface.Up())
		assert.Equal(t, want[i].Flags&net.FlagLoopback != 0, iface.Loopback())
		_, err := iface.Addrs()
		assert.NoError(t, err)
	}
}

func TestDialProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	p := NewDialProbe(addr, time.Second)
	status, err := p.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusConnected, status)

	require.NoError(t, ln.Close())

	status, err = p.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusDisconnected, status)
}

func TestDialProbe_InvalidAddress(t *testing.T) {
	status, err := NewDialProbe("no-port", time.Second).Check(context.Background())
	assert.Equal(t, StatusUnknown, status)
	assert.ErrorIs(t, err, ErrConnectivityUnknown)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "connected", StatusConnected.String())
	assert.Equal(t, "disconnected", StatusDisconnected.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
