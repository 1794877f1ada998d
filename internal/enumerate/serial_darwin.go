//go:build darwin

package enumerate

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

type systemSerial struct{}

func (systemSerial) SerialPorts() []PortInfo {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil
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
			Product:      port.Product,
		})
	}
	return out
}

type systemUSBSerial struct{}

func (systemUSBSerial) USBSerialDevices() []USBDevice {
	var out []USBDevice
	for _, port := range (systemSerial{}).SerialPorts() {
		if !port.IsUSB {
			continue
		}
		name := port.Product
		if name == "" {
			name = fmt.Sprintf("%s:%s", port.VID, port.PID)
		}
		out = append(out, USBDevice{ID: port.Name, Name: name})
	}
	return out
}
