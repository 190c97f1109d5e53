package bridge

import (
	"sync"

	"flarebridge/matter-core/pkg/message"
	"flarebridge/matter-core/pkg/transport"
)

// peerDirectory remembers, for each live secure session, the transport
// endpoint and local port its traffic arrives on, so the coordinator
// can address unsolicited reports (Section 4.9) to the right peer
// without waiting for another request from it.
type peerDirectory struct {
	mu    sync.Mutex
	peers map[uint16]peerInfo
}

type peerInfo struct {
	addr transport.Endpoint
	port int
}

func newPeerDirectory() *peerDirectory {
	return &peerDirectory{peers: make(map[uint16]peerInfo)}
}

func (d *peerDirectory) set(sessionID uint16, addr transport.Endpoint, port int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.peers[sessionID] = peerInfo{addr: addr, port: port}
}

func (d *peerDirectory) get(sessionID uint16) (peerInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.peers[sessionID]
	return p, ok
}

// sendReply answers the packet that triggered this response, directly
// on the endpoint and port it arrived from (Section 4.11, step 6).
func (c *Coordinator) sendReply(pkt transport.Packet, protocolID uint16, opcode uint8, exchangeID uint16, sessionID uint16, payload []byte) {
	ph := message.ProtocolHeader{ProtocolID: protocolID, Opcode: opcode, ExchangeID: exchangeID}

	data, err := c.encodeOutgoing(sessionID, ph, payload)
	if err != nil {
		c.logf("encode reply to %s: %v", pkt.From, err)
		return
	}
	if err := c.transport.Send(pkt.Port, pkt.From, data); err != nil {
		c.logf("send reply to %s: %v", pkt.From, err)
		return
	}
	if sessionID != 0 {
		c.peers.set(sessionID, pkt.From, pkt.Port)
	}
}

// sendUnsolicited addresses a report at the peer last seen on
// sessionID. A session whose peer was never recorded (no request yet
// received under it) is silently skipped; the next keep-alive sweep
// will retry.
func (c *Coordinator) sendUnsolicited(sessionID uint16, protocolID uint16, opcode uint8, payload []byte) {
	peer, ok := c.peers.get(sessionID)
	if !ok {
		return
	}

	ph := message.ProtocolHeader{ProtocolID: protocolID, Opcode: opcode, ExchangeID: c.counters.NextExchangeID()}
	data, err := c.encodeOutgoing(sessionID, ph, payload)
	if err != nil {
		c.logf("encode report for session %d: %v", sessionID, err)
		return
	}
	if err := c.transport.Send(peer.port, peer.addr, data); err != nil {
		c.logf("send report to %s: %v", peer.addr, err)
	}
}

// encodeOutgoing wraps payload in ph and, for a secured session,
// encrypts it under the session manager; for session 0 it is sent in
// the clear with the device's unsecured message counter.
func (c *Coordinator) encodeOutgoing(sessionID uint16, ph message.ProtocolHeader, payload []byte) ([]byte, error) {
	if sessionID == 0 {
		h := message.Header{SessionID: 0, MessageCounter: c.counters.NextMessageCounter()}
		return message.EncodeUnsecured(h, ph, payload)
	}

	plaintext := message.BuildPlaintext(ph, payload)
	sealed, counter, err := c.sessions.Encrypt(sessionID, plaintext)
	if err != nil {
		return nil, err
	}
	h := message.Header{SessionID: sessionID, MessageCounter: counter}
	return message.EncodeSecuredEnvelope(h, sealed)
}

func (c *Coordinator) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Warnf(format, args...)
	}
}
