package im

import (
	"bytes"

	"flarebridge/matter-core/pkg/im/message"
	"flarebridge/matter-core/pkg/tlv"
)

// DecodeSubscribeRequest decodes a SubscribeRequestMessage.
func DecodeSubscribeRequest(data []byte) (*message.SubscribeRequestMessage, error) {
	r := tlv.NewReader(bytes.NewReader(data))
	var msg message.SubscribeRequestMessage
	if err := msg.Decode(r); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EncodeSubscribeResponse encodes a SubscribeResponseMessage.
func EncodeSubscribeResponse(subscriptionID message.SubscriptionID, maxInterval uint16) ([]byte, error) {
	msg := &message.SubscribeResponseMessage{
		SubscriptionID: subscriptionID,
		MaxInterval:    maxInterval,
	}
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := msg.Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HandleSubscribeReportData builds the ReportDataMessage for a single
// attribute change delivered against an active subscription.
func HandleSubscribeReportData(subscriptionID message.SubscriptionID, endpoint message.EndpointID, cluster message.ClusterID, attribute message.AttributeID, data []byte) *message.ReportDataMessage {
	return &message.ReportDataMessage{
		SubscriptionID: &subscriptionID,
		AttributeReports: []message.AttributeReportIB{
			{
				AttributeData: &message.AttributeDataIB{
					Path: message.AttributePathIB{
						Endpoint:  endpoint,
						Cluster:   cluster,
						Attribute: attribute,
					},
					Data: data,
				},
			},
		},
	}
}

// EncodeStatusResponse encodes a whole-message failure response
// (opcode 0x01), used when a request cannot be dispatched at all.
func EncodeStatusResponse(status message.Status) ([]byte, error) {
	msg := &message.StatusResponseMessage{Status: status}
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := msg.Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
