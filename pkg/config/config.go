// Package config loads flamebridge device configuration (Section
// 4.14): vendor/product identity, the optional discriminator
// override, the commissioning passcode, storage location, transport
// ports, and log level. Layers, lowest precedence first: built-in
// defaults, an optional YAML file, environment variables
// (FLAMEBRIDGE_*), then command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"flarebridge/matter-core/pkg/commissioning"
	"flarebridge/matter-core/pkg/transport"
)

// Config is the complete device configuration.
type Config struct {
	Device  DeviceConfig  `koanf:"device"`
	Storage StorageConfig `koanf:"storage"`
	Net     NetConfig     `koanf:"net"`
	Log     LogConfig     `koanf:"log"`
}

// DeviceConfig holds Matter device identity (Section 3 / 4.10).
type DeviceConfig struct {
	// VendorID and ProductID are advertised in the commissionable
	// DNS-SD TXT record and reported by the Descriptor cluster's
	// parent Basic Information cluster in a full implementation.
	VendorID  uint16 `koanf:"vendor_id"`
	ProductID uint16 `koanf:"product_id"`

	// Name is a human-readable device name, surfaced in the
	// commissioning info banner only; it has no wire representation
	// in this core.
	Name string `koanf:"name"`

	// Discriminator overrides the persisted, once-generated 12-bit
	// discriminator (Section 3) if nonzero.
	Discriminator uint16 `koanf:"discriminator"`

	// Passcode is the 8-digit ASCII setup PIN supplied to the
	// commissioning coordinator (Section 4.8).
	Passcode string `koanf:"passcode"`
}

// StorageConfig selects and configures the persistence backend
// (Section 4.13).
type StorageConfig struct {
	// Path is the base directory for FileStorage. Empty uses
	// MemoryStorage instead (development/test default).
	Path string `koanf:"path"`
}

// NetConfig configures the UDP transport (Section 4.3).
type NetConfig struct {
	OperationalPort   int `koanf:"operational_port"`
	CommissioningPort int `koanf:"commissioning_port"`
}

// LogConfig configures structured logging verbosity.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Validation errors.
var (
	ErrInvalidVendorID      = errors.New("config: device.vendor_id must be nonzero")
	ErrInvalidPasscode      = errors.New("config: device.passcode must be 8 ASCII digits")
	ErrInvalidDiscriminator = errors.New("config: device.discriminator must fit in 12 bits")
	ErrInvalidPort          = errors.New("config: net ports must be 1-65535 and distinct")
)

// envPrefix is the environment variable prefix (FLAMEBRIDGE_SECTION_KEY
// style names, e.g. FLAMEBRIDGE_DEVICE_VENDOR_ID).
const envPrefix = "FLAMEBRIDGE_"

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			VendorID:  0xFFF1, // test vendor ID range, Matter §2.5.2
			ProductID: 0x8000,
			Name:      "flamebridge",
			Passcode:  "12345678",
		},
		Net: NetConfig{
			OperationalPort:   transport.OperationalPort,
			CommissioningPort: transport.CommissioningPort,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, an optional YAML file at path
// (skipped if path is empty; a missing file is an error), FLAMEBRIDGE_*
// environment variables, and flags, in ascending precedence order.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k, Default()); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flag overrides: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.Replace(s, "_", ".", 1)
}

func loadDefaults(k *koanf.Koanf, d *Config) error {
	defaultMap := map[string]any{
		"device.vendor_id":       d.Device.VendorID,
		"device.product_id":     d.Device.ProductID,
		"device.name":           d.Device.Name,
		"device.discriminator":  d.Device.Discriminator,
		"device.passcode":       d.Device.Passcode,
		"storage.path":          d.Storage.Path,
		"net.operational_port":  d.Net.OperationalPort,
		"net.commissioning_port": d.Net.CommissioningPort,
		"log.level":             d.Log.Level,
	}
	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the configuration for logical errors.
func Validate(cfg *Config) error {
	if cfg.Device.VendorID == 0 {
		return ErrInvalidVendorID
	}
	if len(cfg.Device.Passcode) != 8 {
		return ErrInvalidPasscode
	}
	for _, c := range cfg.Device.Passcode {
		if c < '0' || c > '9' {
			return ErrInvalidPasscode
		}
	}
	if cfg.Device.Discriminator > commissioning.MaxDiscriminator {
		return ErrInvalidDiscriminator
	}
	if !validPort(cfg.Net.OperationalPort) || !validPort(cfg.Net.CommissioningPort) ||
		cfg.Net.OperationalPort == cfg.Net.CommissioningPort {
		return ErrInvalidPort
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// ParseLogLevel maps a configuration log level string to slog.Level.
// Unknown values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
