package devconf

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// DefaultBaudRate is used when a serial device string carries no @baud suffix.
const DefaultBaudRate = 115200

// DefaultListenerPort is used when a listener keyword carries no port number.
const DefaultListenerPort = 23

var urlRe = regexp.MustCompile(`^(tcp|udp)://([\[\]:A-Za-z\-\.0-9]*):(\d+)$`)

// ParseDeviceString turns a user-supplied device string into a DeviceConfig.
// Recognised forms:
//
//	disabled | internal | glider-link | rfcomm-server
//	tcp://host:port
//	udp://host:port
//	tcp-listen[:port] | udp-listen[:port]
//	AA:BB:CC:DD:EE:FF            (Bluetooth classic)
//	ble:AA:BB:CC:DD:EE:FF        (BLE sensor)
//	uart:N
//	pty:/dev/pts/N
//	/dev/ttyACM0[@baud]          (any other string is a serial path)
func ParseDeviceString(s string, baud int) (DeviceConfig, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	cfg := DeviceConfig{BaudRate: baud}

	switch s {
	case "":
		return cfg, fmt.Errorf("devconf: empty device string")
	case "disabled":
		cfg.PortType = Disabled
		return cfg, nil
	case "internal":
		cfg.PortType = Internal
		return cfg, nil
	case "glider-link":
		cfg.PortType = GliderLink
		return cfg, nil
	case "rfcomm-server":
		cfg.PortType = RFCOMMServer
		return cfg, nil
	}

	if m := urlRe.FindStringSubmatch(s); m != nil {
		if m[1] == "tcp" {
			cfg.PortType = TCPClient
		} else {
			// a udp:// URL with a host is a client-style UDP link; the
			// port type stays UDPListener and the host marks the remote
			cfg.PortType = UDPListener
		}
		cfg.TCPHost = m[2]
		cfg.IPPort, _ = strconv.Atoi(m[3])
		return cfg, nil
	}

	for _, lt := range []struct {
		prefix string
		typ    PortType
	}{{"tcp-listen", TCPListener}, {"udp-listen", UDPListener}} {
		if s == lt.prefix {
			cfg.PortType = lt.typ
			cfg.IPPort = DefaultListenerPort
			return cfg, nil
		}
		if strings.HasPrefix(s, lt.prefix+":") {
			port, err := strconv.Atoi(s[len(lt.prefix)+1:])
			if err != nil || port <= 0 || port > 65535 {
				return cfg, fmt.Errorf("devconf: bad listener port in %q", s)
			}
			cfg.PortType = lt.typ
			cfg.IPPort = port
			return cfg, nil
		}
	}

	if strings.HasPrefix(s, "ble:") {
		mac := s[len("ble:"):]
		if !IsBluetoothMAC(mac) {
			return cfg, fmt.Errorf("devconf: bad BLE address %q", mac)
		}
		cfg.PortType = BLESensor
		cfg.BluetoothMAC = mac
		return cfg, nil
	}

	if IsBluetoothMAC(s) {
		cfg.PortType = RFCOMM
		cfg.BluetoothMAC = s
		return cfg, nil
	}

	if strings.HasPrefix(s, "uart:") {
		id, err := strconv.Atoi(s[len("uart:"):])
		if err != nil || id < 0 {
			return cfg, fmt.Errorf("devconf: bad UART index in %q", s)
		}
		cfg.PortType = UARTSensor
		cfg.UARTID = id
		return cfg, nil
	}

	if strings.HasPrefix(s, "pty:") {
		cfg.PortType = PTY
		cfg.Path = s[len("pty:"):]
		return cfg, nil
	}

	ss := strings.Split(s, "@")
	cfg.PortType = Serial
	cfg.Path = ss[0]
	if len(ss) > 1 {
		b, err := strconv.Atoi(ss[1])
		if err != nil || b <= 0 {
			return cfg, fmt.Errorf("devconf: bad baud rate in %q", s)
		}
		cfg.BaudRate = b
	}
	return cfg, nil
}

// IsBluetoothMAC reports whether s looks like a 6-octet colon address.
func IsBluetoothMAC(s string) bool {
	if len(s) != 17 {
		return false
	}
	for i, c := range s {
		if i%3 == 2 {
			if c != ':' {
				return false
			}
		} else if !isHex(byte(c)) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// DeviceString renders the config back into the string form ParseDeviceString
// accepts.
func (c *DeviceConfig) DeviceString() string {
	switch c.PortType {
	case Disabled, Internal, GliderLink, RFCOMMServer:
		return c.PortType.String()
	case TCPClient:
		return fmt.Sprintf("tcp://%s:%d", c.TCPHost, c.IPPort)
	case TCPListener:
		return fmt.Sprintf("tcp-listen:%d", c.IPPort)
	case UDPListener:
		if c.TCPHost != "" {
			return fmt.Sprintf("udp://%s:%d", c.TCPHost, c.IPPort)
		}
		return fmt.Sprintf("udp-listen:%d", c.IPPort)
	case RFCOMM:
		return c.BluetoothMAC
	case BLESensor, BLEHM10:
		return "ble:" + c.BluetoothMAC
	case UARTSensor:
		return fmt.Sprintf("uart:%d", c.UARTID)
	case PTY:
		return "pty:" + c.Path
	case Serial, USBSerial:
		if c.BaudRate != 0 && c.BaudRate != DefaultBaudRate {
			return fmt.Sprintf("%s@%d", c.Path, c.BaudRate)
		}
		return c.Path
	}
	return c.PortType.String()
}

var defaultDevices = []string{"/dev/ttyACM0", "/dev/ttyUSB0"}

// DetectDefault scans the usual USB serial nodes and returns a serial config
// for the first one present.
func DetectDefault(baud int) (DeviceConfig, bool) {
	for _, v := range defaultDevices {
		if _, err := os.Stat(v); err == nil {
			if baud <= 0 {
				baud = DefaultBaudRate
			}
			return DeviceConfig{PortType: Serial, Path: v, BaudRate: baud}, true
		}
	}
	return DeviceConfig{}, false
}
