//go:build !darwin

package enumerate

import (
	"fmt"
	"os"
	"runtime"

	"github.com/albenik/go-serial/enumerator"
)

type systemSerial struct{}

func (systemSerial) SerialPorts() []PortInfo {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return fallbackSerialPorts()
	}
	var out []PortInfo
	for _, port := range ports {
		if port.Name == "" {
			continue
		}
		out = append(out, PortInfo{
			Name:         port.Name,
			IsUSB:        port.IsUSB,
			VID:          port.VID,
			PID:          port.PID,
			SerialNumber: port.SerialNumber,
		})
	}
	return out
}

// fallbackSerialPorts guesses device nodes on platforms where the native
// enumerator is unavailable.
func fallbackSerialPorts() []PortInfo {
	var out []PortInfo
	switch runtime.GOOS {
	case "windows":
		for i := 1; i <= 10; i++ {
			out = append(out, PortInfo{Name: fmt.Sprintf("COM%d", i)})
		}
	case "freebsd":
		for j := 0; j < 10; j++ {
			name := fmt.Sprintf("/dev/cuaU%d", j)
			if _, err := os.Stat(name); err == nil {
				out = append(out, PortInfo{Name: name, IsUSB: true})
			}
		}
	}
	return out
}

type systemUSBSerial struct{}

func (systemUSBSerial) USBSerialDevices() []USBDevice {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil
	}
	var out []USBDevice
	for _, port := range ports {
		if port.Name == "" || !port.IsUSB {
			continue
		}
		out = append(out, USBDevice{ID: port.Name, Name: fmt.Sprintf("%s:%s", port.VID, port.PID)})
	}
	return out
}
