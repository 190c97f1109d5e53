// Package discovery implements DNS-SD (mDNS) advertisement of the
// commissionable node service (Section 4.10). Operational and
// commissioner discovery are out of scope: this bridge only ever
// advertises itself for commissioning, never resolves other nodes.
package discovery

// ServiceCommissionable is the DNS-SD service type this node
// advertises while accepting commissioning.
const ServiceCommissionable = "_matterc._udp"

// DefaultDomain is the mDNS domain used for all registrations.
const DefaultDomain = "local."

// DefaultPort is the Matter operational UDP port, also used for the
// commissioning service per Section 4.10.
const DefaultPort = 5540
