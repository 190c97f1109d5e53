package im

import (
	"bytes"
	"fmt"

	"flarebridge/matter-core/pkg/tlv"
)

// DeviceType identifies an entry in a Descriptor cluster's
// DeviceTypeList (Section 4.7).
type DeviceType struct {
	DeviceType uint32
	Revision   uint16
}

// EncodeValue encodes an attribute value as an anonymous-tagged TLV
// element suitable for AttributeDataIB.Data. Supported Go types cover
// every attribute value this core's clusters expose.
func EncodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)

	switch val := v.(type) {
	case bool:
		if err := w.PutBool(tlv.Anonymous(), val); err != nil {
			return nil, err
		}
	case uint8:
		if err := w.PutUint(tlv.Anonymous(), uint64(val)); err != nil {
			return nil, err
		}
	case uint16:
		if err := w.PutUint(tlv.Anonymous(), uint64(val)); err != nil {
			return nil, err
		}
	case uint32:
		if err := w.PutUint(tlv.Anonymous(), uint64(val)); err != nil {
			return nil, err
		}
	case int16:
		if err := w.PutInt(tlv.Anonymous(), int64(val)); err != nil {
			return nil, err
		}
	case []uint32:
		if err := w.StartArray(tlv.Anonymous()); err != nil {
			return nil, err
		}
		for _, e := range val {
			if err := w.PutUint(tlv.Anonymous(), uint64(e)); err != nil {
				return nil, err
			}
		}
		if err := w.EndContainer(); err != nil {
			return nil, err
		}
	case []DeviceType:
		if err := w.StartArray(tlv.Anonymous()); err != nil {
			return nil, err
		}
		for _, d := range val {
			if err := w.StartStructure(tlv.Anonymous()); err != nil {
				return nil, err
			}
			if err := w.PutUint(tlv.ContextTag(0), uint64(d.DeviceType)); err != nil {
				return nil, err
			}
			if err := w.PutUint(tlv.ContextTag(1), uint64(d.Revision)); err != nil {
				return nil, err
			}
			if err := w.EndContainer(); err != nil {
				return nil, err
			}
		}
		if err := w.EndContainer(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("im: unsupported attribute value type %T", v)
	}

	return buf.Bytes(), nil
}
