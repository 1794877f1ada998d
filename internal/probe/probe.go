// Package probe opens the transport a DeviceConfig points at, so a selection
// can be verified before it is handed to the instrument driver.
package probe

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/glideconf/portsel/internal/devconf"
)

// ErrUnsupported is returned for port types that are not directly openable
// (disabled, built-in sensors, BLE links handled by the platform).
var ErrUnsupported = errors.New("probe: port type cannot be opened directly")

// Open connects to the configured port and returns the stream. The caller
// owns the returned stream and must close it.
func Open(cfg *devconf.DeviceConfig) (io.ReadWriteCloser, error) {
	switch cfg.PortType {
	case devconf.Serial, devconf.USBSerial, devconf.PTY:
		return openSerial(cfg.Path, cfg.BaudRate)
	case devconf.RFCOMM:
		return openRFCOMM(cfg.BluetoothMAC)
	case devconf.TCPClient:
		return openTCPClient(cfg.TCPHost, cfg.IPPort)
	case devconf.TCPListener:
		return openTCPListener(cfg.IPPort)
	case devconf.UDPListener:
		return openUDP(cfg.TCPHost, cfg.IPPort)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, cfg.PortType)
}

func openTCPClient(host string, port int) (io.ReadWriteCloser, error) {
	remote := fmt.Sprintf("%s:%d", host, port)
	addr, err := net.ResolveTCPAddr("tcp", remote)
	if err != nil {
		return nil, err
	}
	return net.DialTCP("tcp", nil, addr)
}

// openTCPListener accepts a single inbound connection, which is how the
// instrument side of a TCP port link behaves.
func openTCPListener(port int) (io.ReadWriteCloser, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	defer ln.Close()
	return ln.Accept()
}

func openUDP(host string, port int) (io.ReadWriteCloser, error) {
	if host == "" {
		return net.ListenUDP("udp", &net.UDPAddr{Port: port})
	}
	raddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	return net.DialUDP("udp", nil, raddr)
}
