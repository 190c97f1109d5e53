package crypto

import "testing"

func TestP256ValidatePublicKeyRejectsWrongLength(t *testing.T) {
	if err := P256ValidatePublicKey(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestP256ValidatePublicKeyRejectsOffCurve(t *testing.T) {
	bad := make([]byte, P256PublicKeySizeBytes)
	bad[0] = 0x04
	bad[1] = 1 // x=2^248, y=0 is not on the curve
	if err := P256ValidatePublicKey(bad); err == nil {
		t.Fatal("expected error for off-curve point")
	}
}

func TestP256PublicKeyFromCompressedRejectsWrongSize(t *testing.T) {
	if _, err := P256PublicKeyFromCompressed(make([]byte, 5)); err == nil {
		t.Fatal("expected error for wrong-size compressed key")
	}
}
