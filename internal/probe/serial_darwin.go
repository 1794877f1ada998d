//go:build darwin

package probe

import (
	"io"

	"go.bug.st/serial"
)

func openSerial(path string, baud int) (io.ReadWriteCloser, error) {
	return serial.Open(path, &serial.Mode{BaudRate: baud})
}
