package discovery

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"github.com/grandcat/zeroconf"
)

// MDNSServer is the interface for an active mDNS service registration.
// Narrow enough to allow a fake implementation in tests.
type MDNSServer interface {
	Shutdown()
}

// MDNSServerFactory creates MDNSServer instances.
type MDNSServerFactory interface {
	Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error)
}

type zeroconfServerFactory struct{}

func (zeroconfServerFactory) Register(instance, service, domain string, port int, txt []string, ifaces []net.Interface) (MDNSServer, error) {
	return zeroconf.Register(instance, service, domain, port, txt, ifaces)
}

// AdvertiserConfig configures an Advertiser.
type AdvertiserConfig struct {
	// Port is the Matter port to advertise. Zero uses DefaultPort.
	Port int

	// Interfaces restricts advertisement to specific interfaces. Nil
	// advertises on all of them.
	Interfaces []net.Interface

	// ServerFactory creates the underlying mDNS registration. Nil uses
	// the real zeroconf-backed factory; tests inject a fake.
	ServerFactory MDNSServerFactory
}

// Advertiser publishes the commissionable node service described in
// Section 4.10. It starts after the network is up and the node either
// has no fabric or is in an operational commissioning window, and
// stops cleanly on shutdown.
type Advertiser struct {
	config  AdvertiserConfig
	factory MDNSServerFactory

	mu           sync.Mutex
	server       MDNSServer
	instanceName string
	closed       bool
}

// NewAdvertiser returns an Advertiser for the given configuration.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	if config.Port <= 0 || config.Port > 65535 {
		config.Port = DefaultPort
	}
	factory := config.ServerFactory
	if factory == nil {
		factory = zeroconfServerFactory{}
	}
	return &Advertiser{config: config, factory: factory}
}

// Start begins advertising _matterc._udp with txt. A fresh instance
// name is generated on every call, per the anti-tracking requirement
// in Section 4.10. Returns ErrAlreadyStarted if already advertising.
func (a *Advertiser) Start(txt CommissionableTXT) error {
	if err := txt.Validate(); err != nil {
		return fmt.Errorf("discovery: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server != nil {
		return ErrAlreadyStarted
	}

	instanceName, err := generateRandomInstanceName()
	if err != nil {
		return fmt.Errorf("discovery: generating instance name: %w", err)
	}

	server, err := a.factory.Register(
		instanceName,
		ServiceCommissionable,
		DefaultDomain,
		a.config.Port,
		txt.Encode(),
		a.config.Interfaces,
	)
	if err != nil {
		return fmt.Errorf("discovery: mDNS registration failed: %w", err)
	}

	a.server = server
	a.instanceName = instanceName
	return nil
}

// Stop ends the current advertisement. Returns ErrNotStarted if
// nothing is being advertised.
func (a *Advertiser) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotStarted
	}
	a.server.Shutdown()
	a.server = nil
	a.instanceName = ""
	return nil
}

// Close stops advertising, if active, and permanently closes the
// Advertiser.
func (a *Advertiser) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
	a.closed = true
	return nil
}

// IsAdvertising reports whether the commissionable service is active.
func (a *Advertiser) IsAdvertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// InstanceName returns the instance name of the active advertisement,
// or the empty string if not advertising.
func (a *Advertiser) InstanceName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.instanceName
}

// generateRandomInstanceName returns a fresh 16-hex-character
// uppercase string derived from 64 random bits (Section 4.10).
func generateRandomInstanceName() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016X", binary.BigEndian.Uint64(buf[:])), nil
}
