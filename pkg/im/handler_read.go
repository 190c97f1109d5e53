package im

import (
	"bytes"

	"flarebridge/matter-core/pkg/im/message"
	"flarebridge/matter-core/pkg/tlv"
)

// AttributeReader reads a single attribute and encodes its value as a
// raw TLV element (as accepted by AttributeDataIB.Data / tlv.PutRaw).
// A non-success status means the value is unset; Data is ignored.
type AttributeReader func(endpoint message.EndpointID, cluster message.ClusterID, attribute message.AttributeID) (data []byte, status message.Status)

// HandleReadRequest builds a ReportDataMessage answering every path in
// req by calling read for each. SubscriptionID is left nil: this
// builds a plain read response, not a subscription report.
func HandleReadRequest(req *message.ReadRequestMessage, read AttributeReader) *message.ReportDataMessage {
	reports := make([]message.AttributeReportIB, 0, len(req.AttributeRequests))
	for _, path := range req.AttributeRequests {
		reports = append(reports, readOne(path, read))
	}
	return &message.ReportDataMessage{AttributeReports: reports}
}

func readOne(path message.AttributePathIB, read AttributeReader) message.AttributeReportIB {
	data, status := read(path.Endpoint, path.Cluster, path.Attribute)
	if status != message.StatusSuccess {
		return message.AttributeReportIB{
			AttributeStatus: &message.AttributeStatusIB{
				Path:   path,
				Status: message.StatusIB{Status: status},
			},
		}
	}

	return message.AttributeReportIB{
		AttributeData: &message.AttributeDataIB{
			Path: path,
			Data: data,
		},
	}
}

// EncodeReportData encodes a ReportDataMessage.
func EncodeReportData(msg *message.ReportDataMessage) ([]byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := msg.Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeReadRequest decodes a ReadRequestMessage, enforcing
// MaxAttributePaths.
func DecodeReadRequest(data []byte) (*message.ReadRequestMessage, error) {
	r := tlv.NewReader(bytes.NewReader(data))
	var msg message.ReadRequestMessage
	if err := msg.Decode(r); err != nil {
		return nil, err
	}
	return &msg, nil
}
