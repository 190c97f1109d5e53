package bridge

import (
	"time"

	"flarebridge/matter-core/pkg/im"
	imsg "flarebridge/matter-core/pkg/im/message"
	"flarebridge/matter-core/pkg/message"
	"flarebridge/matter-core/pkg/subscription"
	"flarebridge/matter-core/pkg/transport"
)

// handlePacket implements steps 2-6 of Section 4.11: decode, decrypt,
// dispatch, encode, send. Any framing or authentication failure is
// dropped silently, matching Section 7's policy for malformed or
// unauthenticated traffic.
func (c *Coordinator) handlePacket(pkt transport.Packet) {
	h, rest, err := message.DecodeHeader(pkt.Data)
	if err != nil {
		c.logf("drop from %s: decode header: %v", pkt.From, err)
		return
	}

	plaintext := rest
	if h.SessionID != 0 {
		plaintext, err = c.sessions.Decrypt(h.SessionID, h.MessageCounter, rest)
		if err != nil {
			c.logf("drop from %s on session %d: %v", pkt.From, h.SessionID, err)
			return
		}
		c.peers.set(h.SessionID, pkt.From, pkt.Port)
	}

	ph, payload, err := message.DecodeProtocolHeader(plaintext)
	if err != nil {
		c.logf("drop from %s: decode protocol header: %v", pkt.From, err)
		return
	}

	respOpcode, respPayload, replySessionID, err := c.dispatch(ph, payload, h.SessionID)
	if err != nil {
		c.logf("dispatch from %s: %v", pkt.From, err)
		return
	}

	c.sendReply(pkt, ph.ProtocolID, respOpcode, ph.ExchangeID, replySessionID, respPayload)
}

// dispatch routes a decoded protocol header/payload pair to the
// commissioning coordinator or the Interaction Model handlers (Section
// 4.11, step 5). sessionID is the session the request arrived under
// (0 if unsecured).
func (c *Coordinator) dispatch(ph message.ProtocolHeader, payload []byte, sessionID uint16) (respOpcode uint8, respPayload []byte, replySessionID uint16, err error) {
	switch {
	case ph.ProtocolID == message.ProtocolSecureChannel && isSecureChannelOpcode(ph.Opcode):
		return c.commissioning.HandleSecureChannel(ph.Opcode, payload)

	case ph.ProtocolID == message.ProtocolInteractionModel && ph.Opcode == message.OpcodeReadRequest:
		return c.handleReadRequest(payload, sessionID)

	case ph.ProtocolID == message.ProtocolInteractionModel && ph.Opcode == message.OpcodeSubscribeRequest:
		return c.handleSubscribeRequest(payload, sessionID)

	default:
		respPayload, encErr := im.EncodeStatusResponse(imsg.StatusFailure)
		if encErr != nil {
			return 0, nil, sessionID, encErr
		}
		return message.OpcodeStatusResponse, respPayload, sessionID, nil
	}
}

func isSecureChannelOpcode(opcode uint8) bool {
	switch opcode {
	case message.OpcodePBKDFParamRequest, message.OpcodePAKE1, message.OpcodePAKE3:
		return true
	default:
		return false
	}
}

func (c *Coordinator) handleReadRequest(payload []byte, sessionID uint16) (uint8, []byte, uint16, error) {
	req, err := im.DecodeReadRequest(payload)
	if err != nil {
		resp, encErr := im.EncodeStatusResponse(imsg.StatusFailure)
		if encErr != nil {
			return 0, nil, sessionID, encErr
		}
		return message.OpcodeStatusResponse, resp, sessionID, nil
	}

	report := im.HandleReadRequest(req, c.attrs)
	respPayload, err := im.EncodeReportData(report)
	if err != nil {
		return 0, nil, sessionID, err
	}
	return message.OpcodeReportData, respPayload, sessionID, nil
}

func (c *Coordinator) handleSubscribeRequest(payload []byte, sessionID uint16) (uint8, []byte, uint16, error) {
	req, err := im.DecodeSubscribeRequest(payload)
	if err != nil {
		resp, encErr := im.EncodeStatusResponse(imsg.StatusFailure)
		if encErr != nil {
			return 0, nil, sessionID, encErr
		}
		return message.OpcodeStatusResponse, resp, sessionID, nil
	}

	// SubscribeResponse carries a single SubscriptionId, and the
	// subscription table tracks one attribute path per record, so a
	// request naming more than one path has no id to report back for
	// the paths beyond the first: reject it outright rather than
	// silently creating subscriptions the controller is never told
	// about and can't cancel.
	if len(req.AttributeRequests) != 1 {
		resp, encErr := im.EncodeStatusResponse(imsg.StatusConstraintError)
		if encErr != nil {
			return 0, nil, sessionID, encErr
		}
		return message.OpcodeStatusResponse, resp, sessionID, nil
	}

	now := time.Now()
	minInterval := time.Duration(req.MinIntervalFloor) * time.Second
	maxInterval := time.Duration(req.MaxIntervalCeiling) * time.Second

	path := req.AttributeRequests[0]
	sub, err := c.subs.Add(sessionID, uint8(path.Endpoint), uint32(path.Cluster), uint32(path.Attribute), minInterval, maxInterval, now)
	if err != nil {
		status := imsg.StatusFailure
		if err == subscription.ErrTableFull {
			status = imsg.StatusResourceExhausted
		}
		resp, encErr := im.EncodeStatusResponse(status)
		if encErr != nil {
			return 0, nil, sessionID, encErr
		}
		return message.OpcodeStatusResponse, resp, sessionID, nil
	}
	subscriptionID := imsg.SubscriptionID(sub.ID)

	respPayload, err := im.EncodeSubscribeResponse(subscriptionID, req.MaxIntervalCeiling)
	if err != nil {
		return 0, nil, sessionID, err
	}
	return message.OpcodeSubscribeResponse, respPayload, sessionID, nil
}

// sendDueReport builds and sends a ReportData for a subscription whose
// interval timer fired (Section 4.9), whether because of a pending
// attribute change or a max-interval keep-alive.
func (c *Coordinator) sendDueReport(due subscription.DueReport) {
	data, status := c.attrs(imsg.EndpointID(due.Endpoint), imsg.ClusterID(due.ClusterID), imsg.AttributeID(due.AttributeID))
	if status != imsg.StatusSuccess {
		return
	}

	report := im.HandleSubscribeReportData(
		imsg.SubscriptionID(due.Subscription.ID),
		imsg.EndpointID(due.Endpoint),
		imsg.ClusterID(due.ClusterID),
		imsg.AttributeID(due.AttributeID),
		data,
	)
	payload, err := im.EncodeReportData(report)
	if err != nil {
		c.logf("encode report for subscription %d: %v", due.Subscription.ID, err)
		return
	}

	c.sendUnsolicited(due.Subscription.SessionID, message.ProtocolInteractionModel, message.OpcodeReportData, payload)
}
