//go:build !linux

package enumerate

type systemBluetooth struct{}

func (systemBluetooth) PairedDevices() []BluetoothDevice {
	return nil
}
