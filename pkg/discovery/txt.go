package discovery

import "fmt"

// MaxDiscriminator is the maximum valid discriminator value (12 bits).
const MaxDiscriminator = 0xFFF

// CommissionableTXT holds the TXT records advertised for
// _matterc._udp (Section 4.10): D, VP and CM are always included; DT is
// included only when DeviceType is nonzero.
type CommissionableTXT struct {
	// Discriminator disambiguates this node among nearby commissionable
	// devices (required).
	Discriminator uint16

	// VendorID and ProductID are combined into the VP record.
	VendorID  uint16
	ProductID uint16

	// DeviceType is the primary device type, rendered as 4 hex digits
	// in the DT record. Zero omits the record.
	DeviceType uint32

	// CommissioningMode reflects whether the node currently accepts
	// commissioning (CM=1) or not (CM=0).
	CommissioningMode bool
}

// Validate checks the discriminator is within its 12-bit range.
func (c CommissionableTXT) Validate() error {
	if c.Discriminator > MaxDiscriminator {
		return ErrInvalidDiscriminator
	}
	return nil
}

// Encode renders the TXT record set in DNS-SD "key=value" form.
func (c CommissionableTXT) Encode() []string {
	txt := []string{fmt.Sprintf("D=%d", c.Discriminator)}

	txt = append(txt, fmt.Sprintf("VP=%d,%d", c.VendorID, c.ProductID))

	if c.DeviceType != 0 {
		txt = append(txt, fmt.Sprintf("DT=0x%04X", c.DeviceType))
	}

	cm := 0
	if c.CommissioningMode {
		cm = 1
	}
	txt = append(txt, fmt.Sprintf("CM=%d", cm))

	return txt
}

// Hostname builds the mDNS hostname for a discriminator: "matter-DDDD"
// where DDDD is the discriminator in 4-digit uppercase hex.
func Hostname(discriminator uint16) string {
	return fmt.Sprintf("matter-%04X", discriminator)
}
