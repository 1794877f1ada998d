package choice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glideconf/portsel/internal/devconf"
	"github.com/glideconf/portsel/internal/enumerate"
)

// StaticEntry is one fixed, always-available port choice.
type StaticEntry struct {
	Type  devconf.PortType
	Label string
}

// StaticPortTypes is the fixed table of addressless choices. Entries are
// identified by table position, so the order is part of the codec: decoding
// an ID below StaticSize() indexes this table.
var StaticPortTypes = []StaticEntry{
	{devconf.Disabled, "Disabled"},
	{devconf.Internal, "Built-in GPS & sensors"},
	{devconf.RFCOMMServer, "Bluetooth server"},
	{devconf.GliderLink, "GliderLink traffic receiver"},
	{devconf.TCPClient, "TCP client"},
	{devconf.TCPListener, "TCP port"},
	{devconf.UDPListener, "UDP port"},
}

// StaticSize returns the reserved ID threshold below which IDs are static
// table indexes.
func StaticSize() int { return len(StaticPortTypes) }

// AddPort appends a dynamically discovered port, tagging its ID with the port
// type and the current list length as uniqueness nonce.
func AddPort(l *List, t devconf.PortType, key, label, help string) ID {
	id := Encode(t, l.Count())
	if label == "" {
		label = key
	}
	l.Add(Entry{ID: id, Key: key, Label: label, Help: help})
	return id
}

// SelectOrInsert selects the entry whose key matches value, appending one
// first if the enumeration did not produce it. The configured device stays
// selectable even when it is currently unplugged.
func SelectOrInsert(l *List, t devconf.PortType, value, label string) {
	if l.Select(value) {
		return
	}
	l.SelectID(AddPort(l, t, value, label, ""))
}

// PortTypeOf decodes the selected entry's port type; Disabled when nothing is
// selected.
func PortTypeOf(l *List) devconf.PortType {
	e, ok := l.Selected()
	if !ok {
		return devconf.Disabled
	}
	return Decode(e.ID, StaticSize())
}

// FillPorts rebuilds the choice list: static types first, then detected
// serial ports, Bluetooth pairings, USB serial adapters and UART buses. The
// entry matching cfg is selected, inserted if discovery missed it.
func FillPorts(l *List, cfg *devconf.DeviceConfig, en enumerate.Enumerators) {
	fillPortTypes(l, cfg)
	fillSerialPorts(l, cfg, en.Serial)
	fillBluetoothPorts(l, cfg, en.Bluetooth)
	fillUSBSerialPorts(l, cfg, en.USBSerial)
	fillUARTPorts(l, cfg, en.UARTs)
}

func fillPortTypes(l *List, cfg *devconf.DeviceConfig) {
	for i, s := range StaticPortTypes {
		id := ID(i)
		l.Add(Entry{ID: id, Key: s.Label, Label: s.Label})
		if s.Type == cfg.PortType {
			l.SelectID(id)
		}
	}
}

func fillSerialPorts(l *List, cfg *devconf.DeviceConfig, lister enumerate.SerialLister) {
	if lister != nil {
		sortStart := l.Count()
		found := false
		for _, port := range lister.SerialPorts() {
			label := strings.TrimPrefix(port.Name, "/dev/")
			AddPort(l, devconf.Serial, port.Name, label, "")
			found = true
		}
		if found {
			l.SortFrom(sortStart)
		}
	}

	if cfg.PortType == devconf.Serial && cfg.Path != "" {
		SelectOrInsert(l, devconf.Serial, cfg.Path, "")
	}
}

func fillBluetoothPorts(l *List, cfg *devconf.DeviceConfig, lister enumerate.BluetoothLister) {
	if lister != nil {
		for _, dev := range lister.PairedDevices() {
			if dev.Address == "" {
				continue
			}
			t := devconf.RFCOMM
			if dev.BLE {
				t = devconf.BLEHM10
			}
			AddPort(l, t, dev.Address, dev.Name, "")
		}
	}

	if cfg.PortType.UsesBluetoothMAC() && cfg.BluetoothMAC != "" {
		SelectOrInsert(l, cfg.PortType, cfg.BluetoothMAC, "")
	}
}

func fillUSBSerialPorts(l *List, cfg *devconf.DeviceConfig, lister enumerate.USBSerialLister) {
	if lister != nil {
		for _, dev := range lister.USBSerialDevices() {
			if dev.ID == "" {
				continue
			}
			AddPort(l, devconf.USBSerial, dev.ID, "USB: "+dev.Name, "")
		}
	}

	if cfg.PortType == devconf.USBSerial && cfg.Path != "" {
		SelectOrInsert(l, devconf.USBSerial, cfg.Path, "")
	}
}

func fillUARTPorts(l *List, cfg *devconf.DeviceConfig, counter enumerate.UARTCounter) {
	if counter != nil {
		for i := 0; i < counter.UARTCount(); i++ {
			key := strconv.Itoa(i)
			AddPort(l, devconf.UARTSensor, key,
				fmt.Sprintf("UART sensor %d", i), "Fixed UART bus "+key)
		}
	}

	if cfg.PortType == devconf.UARTSensor {
		SelectOrInsert(l, devconf.UARTSensor, strconv.Itoa(cfg.UARTID), "")
	}
}

// UpdateConfig writes the selected entry back into the configuration record.
func UpdateConfig(l *List, cfg *devconf.DeviceConfig) {
	d := Descriptor(l)
	d.Apply(cfg)
}

// Descriptor returns the selected port in tagged form.
func Descriptor(l *List) devconf.PortDescriptor {
	e, ok := l.Selected()
	if !ok {
		return devconf.PortDescriptor{Type: devconf.Disabled}
	}
	t := Decode(e.ID, StaticSize())
	d := devconf.PortDescriptor{Type: t}
	switch {
	case t.UsesPath():
		d.Path = e.Key
	case t.UsesBluetoothMAC():
		d.BluetoothMAC = e.Key
	case t == devconf.UARTSensor:
		d.UARTID, _ = strconv.Atoi(e.Key)
	}
	return d
}
