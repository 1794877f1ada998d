//go:build !linux

package probe

import (
	"errors"
	"io"
)

func openRFCOMM(addr string) (io.ReadWriteCloser, error) {
	return nil, errors.New("probe: RFCOMM sockets are Linux only")
}
