package enumerate

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// bluezRoot is the bluez persistent registry: one directory per adapter, one
// per bonded device below it, with an ini-style "info" file.
var bluezRoot = "/var/lib/bluetooth"

type systemBluetooth struct{}

func (systemBluetooth) PairedDevices() []BluetoothDevice {
	return pairedFromBluez(bluezRoot)
}

func pairedFromBluez(root string) []BluetoothDevice {
	adapters, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	var out []BluetoothDevice
	for _, a := range adapters {
		if !a.IsDir() || !looksLikeAddress(a.Name()) {
			continue
		}
		devices, err := os.ReadDir(filepath.Join(root, a.Name()))
		if err != nil {
			continue
		}
		for _, d := range devices {
			if !d.IsDir() || !looksLikeAddress(d.Name()) {
				continue
			}
			dev := BluetoothDevice{Address: d.Name()}
			readBluezInfo(filepath.Join(root, a.Name(), d.Name(), "info"), &dev)
			out = append(out, dev)
		}
	}
	return out
}

func readBluezInfo(path string, dev *BluetoothDevice) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if v, ok := strings.CutPrefix(line, "Name="); ok {
			dev.Name = v
		}
		// bluez records AddressType only for LE bondings
		if strings.HasPrefix(line, "AddressType=") {
			dev.BLE = true
		}
	}
}

func looksLikeAddress(s string) bool {
	if len(s) != 17 {
		return false
	}
	for i, c := range s {
		if i%3 == 2 {
			if c != ':' {
				return false
			}
		} else if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
