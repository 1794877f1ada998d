// Package devconf holds the device-connection configuration record: which
// kind of port an external flight instrument is attached to, and the
// transport-specific address needed to open it.
package devconf

import (
	"fmt"
)

// PortType classifies the transport used to reach the device.
type PortType int

const (
	Disabled PortType = iota
	Serial
	RFCOMM
	RFCOMMServer
	BLESensor
	BLEHM10
	UARTSensor
	Internal
	TCPClient
	TCPListener
	UDPListener
	USBSerial
	GliderLink
	PTY
)

var portTypeNames = map[PortType]string{
	Disabled:     "disabled",
	Serial:       "serial",
	RFCOMM:       "rfcomm",
	RFCOMMServer: "rfcomm-server",
	BLESensor:    "ble-sensor",
	BLEHM10:      "ble-hm10",
	UARTSensor:   "uart",
	Internal:     "internal",
	TCPClient:    "tcp",
	TCPListener:  "tcp-listen",
	UDPListener:  "udp-listen",
	USBSerial:    "usb-serial",
	GliderLink:   "glider-link",
	PTY:          "pty",
}

func (t PortType) String() string {
	if s, ok := portTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("port-type-%d", int(t))
}

// PortTypeFromName is the inverse of String.
func PortTypeFromName(name string) (PortType, error) {
	for t, s := range portTypeNames {
		if s == name {
			return t, nil
		}
	}
	return Disabled, fmt.Errorf("devconf: unknown port type %q", name)
}

// UsesPath reports whether the port is addressed by a device node path.
func (t PortType) UsesPath() bool {
	return t == Serial || t == USBSerial || t == PTY
}

// UsesBluetoothMAC reports whether the port is addressed by a Bluetooth MAC.
func (t PortType) UsesBluetoothMAC() bool {
	return t == RFCOMM || t == BLESensor || t == BLEHM10
}

// UsesIPPort reports whether the port needs a TCP/UDP port number.
func (t PortType) UsesIPPort() bool {
	return t == TCPClient || t == TCPListener || t == UDPListener
}

func (t PortType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func (t *PortType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	p, err := PortTypeFromName(s)
	if err != nil {
		return err
	}
	*t = p
	return nil
}

// DeviceConfig is the persistent device-connection record. Only the address
// field matching PortType is meaningful; the others are ignored.
type DeviceConfig struct {
	PortType     PortType `yaml:"port_type"`
	Path         string   `yaml:"path,omitempty"`
	BluetoothMAC string   `yaml:"bluetooth_mac,omitempty"`
	UARTID       int      `yaml:"uart_id,omitempty"`
	BaudRate     int      `yaml:"baud_rate,omitempty"`
	TCPHost      string   `yaml:"tcp_host,omitempty"`
	IPPort       int      `yaml:"ip_port,omitempty"`
}

// PortDescriptor is the tagged form of a configured port: the type plus the
// one address field that type uses.
type PortDescriptor struct {
	Type         PortType
	Path         string
	BluetoothMAC string
	UARTID       int
}

// Descriptor extracts the selected port from the config record.
func (c *DeviceConfig) Descriptor() PortDescriptor {
	d := PortDescriptor{Type: c.PortType}
	switch {
	case c.PortType.UsesPath():
		d.Path = c.Path
	case c.PortType.UsesBluetoothMAC():
		d.BluetoothMAC = c.BluetoothMAC
	case c.PortType == UARTSensor:
		d.UARTID = c.UARTID
	}
	return d
}

// Apply writes the descriptor back into the config record, clearing address
// fields the new type does not use.
func (d PortDescriptor) Apply(c *DeviceConfig) {
	c.PortType = d.Type
	c.Path = ""
	c.BluetoothMAC = ""
	c.UARTID = 0
	switch {
	case d.Type.UsesPath():
		c.Path = d.Path
	case d.Type.UsesBluetoothMAC():
		c.BluetoothMAC = d.BluetoothMAC
	case d.Type == UARTSensor:
		c.UARTID = d.UARTID
	}
}

func (d PortDescriptor) String() string {
	switch {
	case d.Type.UsesPath():
		return fmt.Sprintf("%s %s", d.Type, d.Path)
	case d.Type.UsesBluetoothMAC():
		return fmt.Sprintf("%s %s", d.Type, d.BluetoothMAC)
	case d.Type == UARTSensor:
		return fmt.Sprintf("%s %d", d.Type, d.UARTID)
	}
	return d.Type.String()
}
