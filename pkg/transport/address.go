package transport

import (
	"fmt"
	"net"
)

// Endpoint is the canonical 16-byte-address + port representation of
// a peer, per Section 4.3: IPv4 addresses are stored IPv4-mapped so
// every endpoint is a uniform 16-byte value.
type Endpoint struct {
	IP   [16]byte
	Port uint16
}

// NewEndpoint converts a net.IP/port pair into its canonical form.
func NewEndpoint(ip net.IP, port int) Endpoint {
	var e Endpoint
	e.Port = uint16(port)
	copy(e.IP[:], ip.To16())
	return e
}

// EndpointFromAddr converts a net.Addr (as returned by
// net.PacketConn.ReadFrom) into its canonical Endpoint form.
func EndpointFromAddr(addr net.Addr) (Endpoint, error) {
	udpAddr, ok := addr.(*net.UDPAddr)
	if !ok {
		return Endpoint{}, fmt.Errorf("transport: unsupported address type %T", addr)
	}
	return NewEndpoint(udpAddr.IP, udpAddr.Port), nil
}

// UDPAddr converts an Endpoint back into a *net.UDPAddr suitable for
// net.PacketConn.WriteTo.
func (e Endpoint) UDPAddr() *net.UDPAddr {
	ip := make(net.IP, 16)
	copy(ip, e.IP[:])
	return &net.UDPAddr{IP: ip, Port: int(e.Port)}
}

// IsIPv4 reports whether the endpoint holds an IPv4-mapped address.
func (e Endpoint) IsIPv4() bool {
	return net.IP(e.IP[:]).To4() != nil
}

// String renders the endpoint in "ip:port" form, unmapping IPv4
// addresses back to dotted-quad notation.
func (e Endpoint) String() string {
	ip := net.IP(e.IP[:])
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	return net.JoinHostPort(ip.String(), fmt.Sprint(e.Port))
}

// ParseEndpoint parses "ip:port" (IPv4 or IPv6, with or without
// brackets) into its canonical Endpoint form.
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, err
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return Endpoint{}, fmt.Errorf("transport: invalid address %q", host)
	}
	var port int
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return Endpoint{}, fmt.Errorf("transport: invalid port %q", portStr)
	}
	return NewEndpoint(ip, port), nil
}
