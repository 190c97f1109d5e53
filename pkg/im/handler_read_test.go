package im

import (
	"bytes"
	"testing"

	"flarebridge/matter-core/pkg/im/message"
	"flarebridge/matter-core/pkg/tlv"
)

func encodeReadRequest(t *testing.T, paths []message.AttributePathIB) []byte {
	t.Helper()
	msg := &message.ReadRequestMessage{AttributeRequests: paths}
	var buf bytes.Buffer
	if err := msg.Encode(tlv.NewWriter(&buf)); err != nil {
		t.Fatalf("encode read request: %v", err)
	}
	return buf.Bytes()
}

func TestHandleReadRequestSuccess(t *testing.T) {
	path := message.AttributePathIB{Endpoint: 1, Cluster: 0x0006, Attribute: 0}
	req, err := DecodeReadRequest(encodeReadRequest(t, []message.AttributePathIB{path}))
	if err != nil {
		t.Fatalf("DecodeReadRequest: %v", err)
	}

	read := func(ep message.EndpointID, cl message.ClusterID, attr message.AttributeID) ([]byte, message.Status) {
		data, err := EncodeValue(true)
		if err != nil {
			t.Fatalf("EncodeValue: %v", err)
		}
		return data, message.StatusSuccess
	}

	resp := HandleReadRequest(req, read)
	if len(resp.AttributeReports) != 1 {
		t.Fatalf("got %d reports, want 1", len(resp.AttributeReports))
	}
	report := resp.AttributeReports[0]
	if report.AttributeData == nil {
		t.Fatal("expected AttributeData, got status")
	}
	if report.AttributeData.Path != path {
		t.Fatalf("path mismatch: got %+v want %+v", report.AttributeData.Path, path)
	}
}

func TestHandleReadRequestUnsupportedAttribute(t *testing.T) {
	path := message.AttributePathIB{Endpoint: 1, Cluster: 0x0006, Attribute: 99}
	req, _ := DecodeReadRequest(encodeReadRequest(t, []message.AttributePathIB{path}))

	read := func(message.EndpointID, message.ClusterID, message.AttributeID) ([]byte, message.Status) {
		return nil, message.StatusUnsupportedAttribute
	}

	resp := HandleReadRequest(req, read)
	report := resp.AttributeReports[0]
	if report.AttributeStatus == nil {
		t.Fatal("expected AttributeStatus, got data")
	}
	if report.AttributeStatus.Status.Status != message.StatusUnsupportedAttribute {
		t.Fatalf("got status %v", report.AttributeStatus.Status.Status)
	}
}

func TestReportDataEncodeDecodeRoundTrip(t *testing.T) {
	path := message.AttributePathIB{Endpoint: 1, Cluster: 0x0402, Attribute: 0}
	data, err := EncodeValue(int16(2100))
	if err != nil {
		t.Fatalf("EncodeValue: %v", err)
	}

	report := &message.ReportDataMessage{
		AttributeReports: []message.AttributeReportIB{
			{AttributeData: &message.AttributeDataIB{Path: path, Data: data}},
		},
	}

	encoded, err := EncodeReportData(report)
	if err != nil {
		t.Fatalf("EncodeReportData: %v", err)
	}

	r := tlv.NewReader(bytes.NewReader(encoded))
	var decoded message.ReportDataMessage
	if err := decoded.Decode(r); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.AttributeReports) != 1 {
		t.Fatalf("got %d reports, want 1", len(decoded.AttributeReports))
	}

	vr := tlv.NewReader(bytes.NewReader(decoded.AttributeReports[0].AttributeData.Data))
	if err := vr.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	got, err := vr.Int()
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if got != 2100 {
		t.Fatalf("got %d want 2100", got)
	}
}

func TestSubscribeRequestResponseRoundTrip(t *testing.T) {
	req := &message.SubscribeRequestMessage{
		AttributeRequests:  []message.AttributePathIB{{Endpoint: 1, Cluster: 0x0006, Attribute: 0}},
		MinIntervalFloor:   1,
		MaxIntervalCeiling: 60,
	}
	var buf bytes.Buffer
	if err := req.Encode(tlv.NewWriter(&buf)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeSubscribeRequest(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeSubscribeRequest: %v", err)
	}
	if decoded.MinIntervalFloor != 1 || decoded.MaxIntervalCeiling != 60 {
		t.Fatalf("interval mismatch: %+v", decoded)
	}
	if len(decoded.AttributeRequests) != 1 {
		t.Fatalf("got %d paths, want 1", len(decoded.AttributeRequests))
	}

	respBytes, err := EncodeSubscribeResponse(7, 60)
	if err != nil {
		t.Fatalf("EncodeSubscribeResponse: %v", err)
	}
	var resp message.SubscribeResponseMessage
	if err := resp.Decode(tlv.NewReader(bytes.NewReader(respBytes))); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SubscriptionID != 7 || resp.MaxInterval != 60 {
		t.Fatalf("got %+v", resp)
	}
}

func TestTooManyAttributePaths(t *testing.T) {
	paths := make([]message.AttributePathIB, message.MaxAttributePaths+1)
	for i := range paths {
		paths[i] = message.AttributePathIB{Endpoint: 1, Cluster: 0x0006, Attribute: 0}
	}
	data := encodeReadRequest(t, paths)
	if _, err := DecodeReadRequest(data); err != message.ErrTooManyPaths {
		t.Fatalf("expected ErrTooManyPaths, got %v", err)
	}
}
