package discovery

import (
	"reflect"
	"testing"
)

func TestCommissionableTXTEncode(t *testing.T) {
	txt := CommissionableTXT{
		Discriminator:     3840,
		VendorID:          0xFFF1,
		ProductID:         0x8000,
		DeviceType:        0x0302,
		CommissioningMode: true,
	}

	got := txt.Encode()
	want := []string{
		"D=3840",
		"VP=65521,32768",
		"DT=0x0302",
		"CM=1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode() = %v, want %v", got, want)
	}
}

func TestCommissionableTXTEncodeOmitsDeviceType(t *testing.T) {
	txt := CommissionableTXT{Discriminator: 1}
	got := txt.Encode()
	for _, rec := range got {
		if len(rec) >= 3 && rec[:3] == "DT=" {
			t.Fatalf("unexpected DT record in %v", got)
		}
	}
}

func TestCommissionableTXTValidateRejectsOversizedDiscriminator(t *testing.T) {
	txt := CommissionableTXT{Discriminator: MaxDiscriminator + 1}
	if err := txt.Validate(); err != ErrInvalidDiscriminator {
		t.Fatalf("got %v, want ErrInvalidDiscriminator", err)
	}
}

func TestHostname(t *testing.T) {
	if got := Hostname(0x0F00); got != "matter-0F00" {
		t.Fatalf("Hostname = %q", got)
	}
}
