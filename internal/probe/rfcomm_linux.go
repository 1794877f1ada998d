package probe

import (
	"io"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// str2ba converts a textual Bluetooth address into the reversed byte order
// the socket API wants.
func str2ba(addr string) [6]byte {
	a := strings.Split(addr, ":")
	var b [6]byte
	for i, tmp := range a {
		u, _ := strconv.ParseUint(tmp, 16, 8)
		b[len(b)-1-i] = byte(u)
	}
	return b
}

type btConn struct {
	fd int
}

func (c *btConn) Read(buf []byte) (int, error)  { return unix.Read(c.fd, buf) }
func (c *btConn) Write(buf []byte) (int, error) { return unix.Write(c.fd, buf) }
func (c *btConn) Close() error                  { return unix.Close(c.fd) }

func openRFCOMM(addr string) (io.ReadWriteCloser, error) {
	fd, err := unix.Socket(syscall.AF_BLUETOOTH, syscall.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, err
	}
	sa := &unix.SockaddrRFCOMM{Addr: str2ba(addr), Channel: 1}
	if err = unix.Connect(fd, sa); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return &btConn{fd: fd}, nil
}
