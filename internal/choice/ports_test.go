package choice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glideconf/portsel/internal/devconf"
	"github.com/glideconf/portsel/internal/enumerate"
)

type fakeSerial struct{ ports []enumerate.PortInfo }

func (f fakeSerial) SerialPorts() []enumerate.PortInfo { return f.ports }

type fakeBluetooth struct{ devs []enumerate.BluetoothDevice }

func (f fakeBluetooth) PairedDevices() []enumerate.BluetoothDevice { return f.devs }

type fakeUSB struct{ devs []enumerate.USBDevice }

func (f fakeUSB) USBSerialDevices() []enumerate.USBDevice { return f.devs }

type fakeUARTs struct{ n int }

func (f fakeUARTs) UARTCount() int { return f.n }

func countByKey(l *List, key string) int {
	n := 0
	for _, e := range l.Entries() {
		if e.Key == key {
			n++
		}
	}
	return n
}

func TestFillPortsStaticOnly(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.Disabled}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{})

	assert.Equal(t, StaticSize(), l.Count())
	e, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, devconf.Disabled, Decode(e.ID, StaticSize()))
}

func TestFillPortsSelectsConfiguredStaticType(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.TCPClient, TCPHost: "localhost", IPPort: 4560}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{})

	assert.Equal(t, devconf.TCPClient, PortTypeOf(&l))
}

func TestFillPortsUnpluggedSerialDevice(t *testing.T) {
	// enumeration finds nothing but the configured path must still show up
	cfg := &devconf.DeviceConfig{PortType: devconf.Serial, Path: "/dev/ttyUSB0"}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{Serial: fakeSerial{}})

	assert.Equal(t, 1, countByKey(&l, "/dev/ttyUSB0"))
	e, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "/dev/ttyUSB0", e.Key)
	assert.Equal(t, devconf.Serial, PortTypeOf(&l))
}

func TestFillPortsDetectedSerialSorted(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.Serial, Path: "/dev/ttyACM0"}
	ser := fakeSerial{ports: []enumerate.PortInfo{
		{Name: "/dev/ttyUSB0", IsUSB: true},
		{Name: "/dev/ttyACM0", IsUSB: true},
	}}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{Serial: ser})

	tail := l.Entries()[StaticSize():]
	require.Len(t, tail, 2)
	assert.Equal(t, "ttyACM0", tail[0].Label)
	assert.Equal(t, "ttyUSB0", tail[1].Label)

	// configured path was discovered, so no extra entry
	assert.Equal(t, 1, countByKey(&l, "/dev/ttyACM0"))
	e, _ := l.Selected()
	assert.Equal(t, "/dev/ttyACM0", e.Key)
}

func TestFillPortsBluetooth(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.RFCOMM, BluetoothMAC: "AA:BB:CC:DD:EE:FF"}
	bt := fakeBluetooth{devs: []enumerate.BluetoothDevice{
		{Address: "00:11:22:33:44:55", Name: "FlyLogger"},
		{Address: "66:77:88:99:AA:BB", Name: "Vario", BLE: true},
	}}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{Bluetooth: bt})

	require.True(t, l.Select("00:11:22:33:44:55"))
	assert.Equal(t, devconf.RFCOMM, PortTypeOf(&l))
	require.True(t, l.Select("66:77:88:99:AA:BB"))
	assert.Equal(t, devconf.BLEHM10, PortTypeOf(&l))

	// configured MAC was not in the paired list: inserted and selected
	require.True(t, l.Select("AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, 1, countByKey(&l, "AA:BB:CC:DD:EE:FF"))
}

func TestFillPortsUSBSerial(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.USBSerial, Path: "/dev/ttyUSB2"}
	usb := fakeUSB{devs: []enumerate.USBDevice{
		{ID: "/dev/ttyUSB2", Name: "FT232R USB UART"},
	}}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{USBSerial: usb})

	e, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "/dev/ttyUSB2", e.Key)
	assert.Equal(t, "USB: FT232R USB UART", e.Label)
	assert.Equal(t, devconf.USBSerial, PortTypeOf(&l))
}

func TestFillPortsUARTSensors(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.UARTSensor, UARTID: 1}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{UARTs: fakeUARTs{n: 2}})

	e, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", e.Key)
	assert.Equal(t, devconf.UARTSensor, PortTypeOf(&l))
	// both buses offered exactly once
	assert.Equal(t, 1, countByKey(&l, "0"))
	assert.Equal(t, 1, countByKey(&l, "1"))
}

func TestSelectOrInsertIdempotent(t *testing.T) {
	var l List
	SelectOrInsert(&l, devconf.Serial, "/dev/ttyUSB0", "")
	n := l.Count()
	first, ok := l.Selected()
	require.True(t, ok)

	SelectOrInsert(&l, devconf.Serial, "/dev/ttyUSB0", "")
	assert.Equal(t, n, l.Count())
	second, _ := l.Selected()
	assert.Equal(t, first.ID, second.ID)
}

func TestUpdateConfigHandsBackDescriptor(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.RFCOMM, BluetoothMAC: "AA:BB:CC:DD:EE:FF", BaudRate: 57600}
	ser := fakeSerial{ports: []enumerate.PortInfo{{Name: "/dev/ttyACM0"}}}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{Serial: ser})

	require.True(t, l.Select("/dev/ttyACM0"))
	UpdateConfig(&l, cfg)

	assert.Equal(t, devconf.Serial, cfg.PortType)
	assert.Equal(t, "/dev/ttyACM0", cfg.Path)
	assert.Empty(t, cfg.BluetoothMAC, "stale address must be cleared")
	assert.Equal(t, 57600, cfg.BaudRate, "line settings are not part of the selection")
}

func TestDescriptorUART(t *testing.T) {
	cfg := &devconf.DeviceConfig{PortType: devconf.UARTSensor, UARTID: 3}
	var l List
	FillPorts(&l, cfg, enumerate.Enumerators{UARTs: fakeUARTs{n: 4}})

	d := Descriptor(&l)
	assert.Equal(t, devconf.UARTSensor, d.Type)
	assert.Equal(t, 3, d.UARTID)
}

func TestDescriptorNothingSelected(t *testing.T) {
	var l List
	assert.Equal(t, devconf.Disabled, Descriptor(&l).Type)
	assert.Equal(t, devconf.Disabled, PortTypeOf(&l))
}
