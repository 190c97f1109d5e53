// Package fabric implements the simplified fabric model (Section 3): a
// small table of trust domains a device has been commissioned into,
// persisted as a single flat blob.
package fabric

import (
	"encoding/binary"
	"errors"
)

// RootPublicKeySize is the length of an uncompressed P-256 public key.
const RootPublicKeySize = 65

// ErrMalformedBlob is returned when a persisted fabric blob is
// truncated or internally inconsistent.
var ErrMalformedBlob = errors.New("fabric: malformed blob")

// Fabric is a trust domain binding this device to a controller
// (Section 3).
type Fabric struct {
	Active        bool
	FabricID      uint64
	VendorID      uint16
	RootPublicKey [RootPublicKeySize]byte
	LastSeen      uint32 // seconds, implementation-defined epoch
}

// encodedLen is the fixed per-entry size in the persisted blob:
// active(1) + fabric_id(8) + vendor_id(2) + root_public_key(65) + last_seen(4).
const encodedLen = 1 + 8 + 2 + RootPublicKeySize + 4

func (f *Fabric) encode(dst []byte) {
	if f.Active {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	binary.BigEndian.PutUint64(dst[1:9], f.FabricID)
	binary.BigEndian.PutUint16(dst[9:11], f.VendorID)
	copy(dst[11:11+RootPublicKeySize], f.RootPublicKey[:])
	binary.BigEndian.PutUint32(dst[11+RootPublicKeySize:encodedLen], f.LastSeen)
}

func decodeFabric(src []byte) Fabric {
	var f Fabric
	f.Active = src[0] != 0
	f.FabricID = binary.BigEndian.Uint64(src[1:9])
	f.VendorID = binary.BigEndian.Uint16(src[9:11])
	copy(f.RootPublicKey[:], src[11:11+RootPublicKeySize])
	f.LastSeen = binary.BigEndian.Uint32(src[11+RootPublicKeySize : encodedLen])
	return f
}

// EncodeBlob serializes fabrics as {count:u8, fabric[0..count]},
// the persisted representation under storage.KeyFabrics.
func EncodeBlob(fabrics []Fabric) []byte {
	out := make([]byte, 1+len(fabrics)*encodedLen)
	out[0] = byte(len(fabrics))
	for i, f := range fabrics {
		f.encode(out[1+i*encodedLen : 1+(i+1)*encodedLen])
	}
	return out
}

// DecodeBlob parses the persisted fabric blob. An empty or missing
// record decodes to zero fabrics.
func DecodeBlob(data []byte) ([]Fabric, error) {
	if len(data) == 0 {
		return nil, nil
	}
	count := int(data[0])
	want := 1 + count*encodedLen
	if len(data) < want {
		return nil, ErrMalformedBlob
	}

	fabrics := make([]Fabric, count)
	for i := 0; i < count; i++ {
		start := 1 + i*encodedLen
		fabrics[i] = decodeFabric(data[start : start+encodedLen])
	}
	return fabrics, nil
}
