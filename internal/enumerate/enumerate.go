// Package enumerate discovers candidate ports on the local system: serial
// device nodes, paired Bluetooth devices, USB serial adapters and fixed UART
// buses. Each concern is an interface so platform backends can be swapped or
// faked; a failing backend yields an empty list, never an error.
package enumerate

// PortInfo describes one discovered serial device node.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// BluetoothDevice describes one paired Bluetooth device.
type BluetoothDevice struct {
	Address string
	Name    string
	BLE     bool
}

// USBDevice describes one USB serial adapter, keyed by its device path.
type USBDevice struct {
	ID   string
	Name string
}

type SerialLister interface {
	SerialPorts() []PortInfo
}

type BluetoothLister interface {
	PairedDevices() []BluetoothDevice
}

type USBSerialLister interface {
	USBSerialDevices() []USBDevice
}

type UARTCounter interface {
	UARTCount() int
}

// Enumerators bundles the platform backends. Nil fields mean the capability
// is absent; callers treat that as an empty enumeration.
type Enumerators struct {
	Serial    SerialLister
	Bluetooth BluetoothLister
	USBSerial USBSerialLister
	UARTs     UARTCounter
}

// System returns the enumerators for the running platform.
func System() Enumerators {
	return Enumerators{
		Serial:    systemSerial{},
		Bluetooth: systemBluetooth{},
		USBSerial: systemUSBSerial{},
		UARTs:     systemUARTs{},
	}
}
