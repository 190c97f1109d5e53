// flamebridge is the reference binary for the flame/fan/temperature
// sensor bridge described by this core: it wires storage, the
// commissioning coordinator, the cluster registry, the UDP transport,
// DNS-SD advertisement, and the protocol coordinator together and runs
// until interrupted.
//
// Usage:
//
//	flamebridge [-config path.yaml] [flags]
//
// Flags mirror the FLAMEBRIDGE_* environment variables and config.yaml
// fields documented in pkg/config; -h prints the full set.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pion/logging"
	"github.com/spf13/pflag"

	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/bridge"
	"flarebridge/matter-core/pkg/clusters"
	"flarebridge/matter-core/pkg/commissioning"
	"flarebridge/matter-core/pkg/config"
	"flarebridge/matter-core/pkg/discovery"
	"flarebridge/matter-core/pkg/sensor"
	"flarebridge/matter-core/pkg/session"
	"flarebridge/matter-core/pkg/storage"
	"flarebridge/matter-core/pkg/subscription"
	"flarebridge/matter-core/pkg/transport"
)

func main() {
	flags := pflag.NewFlagSet("flamebridge", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a YAML config file")
	flags.String("device.name", "", "device name shown in the onboarding banner")
	flags.Uint16("device.vendor_id", 0, "Matter vendor ID")
	flags.Uint16("device.product_id", 0, "Matter product ID")
	flags.Uint16("device.discriminator", 0, "12-bit discriminator override")
	flags.String("device.passcode", "", "8-digit setup passcode")
	flags.String("storage.path", "", "persistent storage directory (empty = in-memory)")
	flags.Int("net.operational_port", 0, "operational UDP port")
	flags.Int("net.commissioning_port", 0, "commissioning UDP port")
	flags.String("log.level", "", "log level: debug, info, warn, error")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		logger.Error("flamebridge exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := openStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	sessions := session.NewManager()
	commish, err := commissioning.New([]byte(cfg.Device.Passcode), store, sessions)
	if err != nil {
		return fmt.Errorf("commissioning.New: %w", err)
	}

	discriminator := commish.Discriminator()
	if cfg.Device.Discriminator != 0 {
		discriminator = cfg.Device.Discriminator
	}

	attrs := attrstore.New()
	registry := clusters.NewRegistry(attrs)
	subs := subscription.NewTable()
	samples := sensor.NewTicker(2*time.Second, sensor.DefaultNext())

	opConn, err := listenUDP(cfg.Net.OperationalPort)
	if err != nil {
		return fmt.Errorf("listen operational port: %w", err)
	}
	cmConn, err := listenUDP(cfg.Net.CommissioningPort)
	if err != nil {
		return fmt.Errorf("listen commissioning port: %w", err)
	}

	loggerFactory := logging.NewDefaultLoggerFactory()

	tr, err := transport.Open(transport.Config{
		OperationalConn:   opConn,
		CommissioningConn: cmConn,
		LoggerFactory:     loggerFactory,
	})
	if err != nil {
		return fmt.Errorf("transport.Open: %w", err)
	}
	if err := tr.Start(); err != nil {
		return fmt.Errorf("transport.Start: %w", err)
	}
	defer tr.Stop()

	coord, err := bridge.New(bridge.Config{
		Transport:     tr,
		Sessions:      sessions,
		Commissioning: commish,
		Attributes:    registry.Read,
		Subscriptions: subs,
		Store:         attrs,
		Sensors:       samples,
		LoggerFactory: loggerFactory,
	})
	if err != nil {
		return fmt.Errorf("bridge.New: %w", err)
	}

	advertiser := discovery.NewAdvertiser(discovery.AdvertiserConfig{Port: cfg.Net.OperationalPort})
	if err := advertiser.Start(discovery.CommissionableTXT{
		Discriminator:     discriminator,
		VendorID:          cfg.Device.VendorID,
		ProductID:         cfg.Device.ProductID,
		DeviceType:        clusters.DeviceTypeTemperatureSensor,
		CommissioningMode: !commish.Commissioned(),
	}); err != nil {
		return fmt.Errorf("advertiser.Start: %w", err)
	}
	defer advertiser.Stop()

	samples.Start()
	defer samples.Stop()

	if err := coord.Start(); err != nil {
		return fmt.Errorf("coord.Start: %w", err)
	}

	printOnboardingInfo(cfg, discriminator)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down")
	return coord.Stop()
}

func openStorage(cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Path == "" {
		return storage.NewMemoryStorage(), nil
	}
	return storage.NewFileStorage(cfg.Path)
}

func listenUDP(port int) (net.PacketConn, error) {
	return net.ListenPacket("udp", fmt.Sprintf(":%d", port))
}

func printOnboardingInfo(cfg *config.Config, discriminator uint16) {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("         flamebridge device ready")
	fmt.Println("========================================")
	fmt.Printf("Device Name:    %s\n", cfg.Device.Name)
	fmt.Printf("Operational:    :%d\n", cfg.Net.OperationalPort)
	fmt.Printf("Commissioning:  :%d\n", cfg.Net.CommissioningPort)
	fmt.Printf("Discriminator:  %d\n", discriminator)
	fmt.Printf("Passcode:       %s\n", cfg.Device.Passcode)
	fmt.Println("========================================")
}
