package message

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	src := uint64(0x1122334455667788)
	dst := uint64(0x99aabbccddeeff00)

	cases := []Header{
		{SessionID: 0, SecurityFlags: 0, MessageCounter: 1},
		{SessionID: 7, SecurityFlags: 1, MessageCounter: 0xFFFFFFFF},
		{SessionID: 7, MessageCounter: 42, SourceNodeID: &src},
		{SessionID: 7, MessageCounter: 42, SourceNodeID: &src, DestNodeID: &dst},
	}

	for i, h := range cases {
		enc := h.Encode(nil)
		got, rest, err := DecodeHeader(enc)
		if err != nil {
			t.Fatalf("case %d: decode: %v", i, err)
		}
		if len(rest) != 0 {
			t.Fatalf("case %d: leftover bytes: %d", i, len(rest))
		}
		if got.SessionID != h.SessionID || got.SecurityFlags != h.SecurityFlags || got.MessageCounter != h.MessageCounter {
			t.Fatalf("case %d: mismatch: %+v vs %+v", i, got, h)
		}
		if (got.SourceNodeID == nil) != (h.SourceNodeID == nil) {
			t.Fatalf("case %d: source node id presence mismatch", i)
		}
		if got.SourceNodeID != nil && *got.SourceNodeID != *h.SourceNodeID {
			t.Fatalf("case %d: source node id mismatch", i)
		}
		if (got.DestNodeID == nil) != (h.DestNodeID == nil) {
			t.Fatalf("case %d: dest node id presence mismatch", i)
		}
	}
}

func TestDecodeHeaderInvalidVersion(t *testing.T) {
	buf := []byte{0x01, 0, 0, 0, 0, 0, 0, 0}
	if _, _, err := DecodeHeader(buf); err != ErrInvalidVersion {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	if _, _, err := DecodeHeader([]byte{0, 0, 0}); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestUnsecuredRoundTrip(t *testing.T) {
	h := Header{MessageCounter: 5}
	ph := ProtocolHeader{ProtocolID: ProtocolInteractionModel, Opcode: OpcodeReadRequest, ExchangeID: 3}
	payload := []byte{0xde, 0xad, 0xbe, 0xef}

	wire, err := EncodeUnsecured(h, ph, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	gotH, gotPH, gotPayload, err := DecodeUnsecured(wire)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gotH.SessionID != 0 || gotH.MessageCounter != 5 {
		t.Fatalf("header mismatch: %+v", gotH)
	}
	if gotPH != ph {
		t.Fatalf("protocol header mismatch: %+v vs %+v", gotPH, ph)
	}
	if string(gotPayload) != string(payload) {
		t.Fatalf("payload mismatch")
	}
}
