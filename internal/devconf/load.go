package devconf

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Load reads the device configuration: defaults, then the YAML file (path "-"
// reads stdin, "" skips the file), then .env / PORTSEL_* environment
// overrides, then validation.
func Load(path string) (*DeviceConfig, error) {
	cfg := &DeviceConfig{PortType: Disabled, BaudRate: DefaultBaudRate}

	if path != "" {
		r, err := openStdinOrFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("devconf: open %s: %w", path, err)
			}
		} else {
			defer r.Close()
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("devconf: read %s: %w", path, err)
			}
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("devconf: parse %s: %w", path, err)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return Validate(cfg)
}

func applyEnvOverrides(cfg *DeviceConfig) error {
	if val := os.Getenv("PORTSEL_DEVICE"); val != "" {
		parsed, err := ParseDeviceString(val, cfg.BaudRate)
		if err != nil {
			return fmt.Errorf("devconf: PORTSEL_DEVICE: %w", err)
		}
		*cfg = parsed
	}
	if val := os.Getenv("PORTSEL_BAUD"); val != "" {
		b, err := strconv.Atoi(val)
		if err != nil || b <= 0 {
			return fmt.Errorf("devconf: PORTSEL_BAUD: bad value %q", val)
		}
		cfg.BaudRate = b
	}
	return nil
}

// Validate checks the record for obvious issues and returns it with defaults
// applied.
func Validate(cfg *DeviceConfig) (*DeviceConfig, error) {
	if cfg.BaudRate <= 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	switch {
	case cfg.PortType.UsesPath():
		if cfg.Path == "" {
			return nil, fmt.Errorf("devconf: %s port needs a device path", cfg.PortType)
		}
	case cfg.PortType.UsesBluetoothMAC():
		if !IsBluetoothMAC(cfg.BluetoothMAC) {
			return nil, fmt.Errorf("devconf: %s port needs a Bluetooth address, got %q",
				cfg.PortType, cfg.BluetoothMAC)
		}
	case cfg.PortType == UARTSensor:
		if cfg.UARTID < 0 || cfg.UARTID > 15 {
			return nil, fmt.Errorf("devconf: UART index %d out of range", cfg.UARTID)
		}
	case cfg.PortType == TCPClient:
		if cfg.TCPHost == "" {
			return nil, fmt.Errorf("devconf: tcp port needs a host")
		}
		fallthrough
	case cfg.PortType.UsesIPPort():
		if cfg.IPPort == 0 {
			cfg.IPPort = DefaultListenerPort
		}
		if cfg.IPPort < 0 || cfg.IPPort > 65535 {
			return nil, fmt.Errorf("devconf: port number %d out of range", cfg.IPPort)
		}
	}
	return cfg, nil
}

// Save writes the record as YAML; path "-" writes to stdout.
func Save(cfg *DeviceConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	w, err := openStdoutOrFile(path)
	if err != nil {
		return fmt.Errorf("devconf: create %s: %w", path, err)
	}
	if _, err = w.Write(data); err != nil {
		w.Close()
		return err
	}
	if w == os.Stdout {
		return nil
	}
	return w.Close()
}

func openStdinOrFile(path string) (io.ReadCloser, error) {
	if len(path) == 0 || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openStdoutOrFile(path string) (io.WriteCloser, error) {
	if len(path) == 0 || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
