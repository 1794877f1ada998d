//go:build !darwin

package probe

import (
	"io"

	"github.com/albenik/go-serial/v2"
)

func openSerial(path string, baud int) (io.ReadWriteCloser, error) {
	p, err := serial.Open(path, serial.WithBaudrate(baud), serial.WithReadTimeout(1))
	if err != nil {
		return nil, err
	}
	p.SetFirstByteReadTimeout(100)
	p.ResetInputBuffer()
	p.ResetOutputBuffer()
	return p, nil
}
