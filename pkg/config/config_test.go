package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"flarebridge/matter-core/pkg/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.Device.VendorID == 0 {
		t.Error("Default() VendorID must be nonzero")
	}
	if cfg.Net.OperationalPort != 5540 {
		t.Errorf("OperationalPort = %d, want 5540", cfg.Net.OperationalPort)
	}
	if cfg.Net.CommissioningPort != 5550 {
		t.Errorf("CommissioningPort = %d, want 5550", cfg.Net.CommissioningPort)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("Default() failed validation: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flamebridge.yaml")
	yamlContent := `
device:
  vendor_id: 4660
  product_id: 22136
  name: kitchen-sensor
  passcode: "87654321"
storage:
  path: /var/lib/flamebridge
`
	if err := os.WriteFile(path, []byte(yamlContent), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.VendorID != 4660 {
		t.Errorf("VendorID = %d, want 4660", cfg.Device.VendorID)
	}
	if cfg.Device.Name != "kitchen-sensor" {
		t.Errorf("Name = %q, want kitchen-sensor", cfg.Device.Name)
	}
	if cfg.Device.Passcode != "87654321" {
		t.Errorf("Passcode = %q, want 87654321", cfg.Device.Passcode)
	}
	if cfg.Storage.Path != "/var/lib/flamebridge" {
		t.Errorf("Storage.Path = %q, want /var/lib/flamebridge", cfg.Storage.Path)
	}
	// Fields absent from the YAML keep their defaults.
	if cfg.Net.OperationalPort != 5540 {
		t.Errorf("OperationalPort = %d, want default 5540", cfg.Net.OperationalPort)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flamebridge.yaml")
	if err := os.WriteFile(path, []byte("device:\n  name: from-yaml\n"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("FLAMEBRIDGE_DEVICE_NAME", "from-env")

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Name != "from-env" {
		t.Errorf("Name = %q, want from-env (env overrides YAML)", cfg.Device.Name)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FLAMEBRIDGE_DEVICE_NAME", "from-env")

	flags := pflag.NewFlagSet("flamebridge", pflag.ContinueOnError)
	flags.String("device.name", "", "device name")
	if err := flags.Parse([]string{"--device.name=from-flag"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := config.Load("", flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Name != "from-flag" {
		t.Errorf("Name = %q, want from-flag (flags override env)", cfg.Device.Name)
	}
}

func TestValidateRejectsBadPasscode(t *testing.T) {
	cfg := config.Default()
	cfg.Device.Passcode = "1234"
	if err := config.Validate(cfg); err != config.ErrInvalidPasscode {
		t.Fatalf("got %v, want ErrInvalidPasscode", err)
	}
}

func TestValidateRejectsOversizedDiscriminator(t *testing.T) {
	cfg := config.Default()
	cfg.Device.Discriminator = 0x1000
	if err := config.Validate(cfg); err != config.ErrInvalidDiscriminator {
		t.Fatalf("got %v, want ErrInvalidDiscriminator", err)
	}
}

func TestValidateRejectsDuplicatePorts(t *testing.T) {
	cfg := config.Default()
	cfg.Net.CommissioningPort = cfg.Net.OperationalPort
	if err := config.Validate(cfg); err != config.ErrInvalidPort {
		t.Fatalf("got %v, want ErrInvalidPort", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"debug": "DEBUG",
		"WARN":  "WARN",
		"bogus": "INFO",
	}
	for in, want := range cases {
		if got := config.ParseLogLevel(in).String(); got != want {
			t.Errorf("ParseLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
