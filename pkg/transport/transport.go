package transport

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/pion/logging"
)

// OperationalPort and CommissioningPort are the two UDP ports this
// core listens on (Section 4.3).
const (
	OperationalPort   = 5540
	CommissioningPort = 5550
)

// Config configures a Transport.
type Config struct {
	// OperationalConn and CommissioningConn are optional
	// pre-established sockets, for tests. Nil opens ":5540"/":5550".
	OperationalConn   net.PacketConn
	CommissioningConn net.PacketConn

	LoggerFactory logging.LoggerFactory
}

// Transport is the dual-port UDP transport from Section 4.3. It binds
// the operational (5540) and commissioning (5550) ports, each dual
// IPv4/IPv6 capable, and feeds every received packet into one shared,
// fixed-capacity RX ring buffer. Send is best-effort and non-blocking.
type Transport struct {
	operational   net.PacketConn
	commissioning net.PacketConn
	rx            ringBuffer
	log           logging.LeveledLogger

	closeCh chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// Open binds both listening sockets without starting the read loops;
// call Start to begin receiving.
func Open(config Config) (*Transport, error) {
	t := &Transport{closeCh: make(chan struct{})}

	if config.LoggerFactory != nil {
		t.log = config.LoggerFactory.NewLogger("transport")
	}

	var err error
	t.operational, err = openConn(config.OperationalConn, OperationalPort)
	if err != nil {
		return nil, err
	}
	t.commissioning, err = openConn(config.CommissioningConn, CommissioningPort)
	if err != nil {
		t.operational.Close()
		return nil, err
	}

	return t, nil
}

func openConn(conn net.PacketConn, port int) (net.PacketConn, error) {
	if conn != nil {
		return conn, nil
	}
	return net.ListenPacket("udp", udpListenAddr(port))
}

func udpListenAddr(port int) string {
	return fmt.Sprintf(":%d", port)
}

// Start begins the two read loops. Each enqueues received packets
// into the shared ring buffer, tagged with the port they arrived on.
func (t *Transport) Start() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.started {
		t.mu.Unlock()
		return ErrAlreadyStarted
	}
	t.started = true
	t.mu.Unlock()

	t.wg.Add(2)
	go t.readLoop(t.operational, OperationalPort)
	go t.readLoop(t.commissioning, CommissioningPort)
	return nil
}

func (t *Transport) readLoop(conn net.PacketConn, port int) {
	defer t.wg.Done()

	buf := make([]byte, MaxPacketSize)
	for {
		select {
		case <-t.closeCh:
			return
		default:
		}

		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-t.closeCh:
				return
			default:
				if t.log != nil {
					t.log.Warnf("read error on port %d: %v", port, err)
				}
				continue
			}
		}
		if n == 0 {
			continue
		}

		from, err := EndpointFromAddr(addr)
		if err != nil {
			if t.log != nil {
				t.log.Warnf("unrecognized peer address on port %d: %v", port, err)
			}
			continue
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		if !t.rx.push(Packet{Data: data, From: from, Port: port}) {
			if t.log != nil {
				t.log.Warnf("RX ring buffer full, dropping packet from %s on port %d", from, port)
			}
		}
	}
}

// Receive returns the oldest queued packet, non-blocking. ok is false
// if no packet is queued.
func (t *Transport) Receive() (Packet, bool) {
	return t.rx.pop()
}

// OperationalAddr returns the bound local address of the operational
// (5540) socket.
func (t *Transport) OperationalAddr() net.Addr {
	return t.operational.LocalAddr()
}

// CommissioningAddr returns the bound local address of the
// commissioning (5550) socket.
func (t *Transport) CommissioningAddr() net.Addr {
	return t.commissioning.LocalAddr()
}

// Send writes data to addr on the given local port (OperationalPort or
// CommissioningPort), best-effort and non-blocking.
func (t *Transport) Send(port int, addr Endpoint, data []byte) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.mu.Unlock()

	if len(data) > MaxPacketSize {
		return ErrMessageTooLarge
	}

	conn, err := t.connForPort(port)
	if err != nil {
		return err
	}
	_, err = conn.WriteTo(data, addr.UDPAddr())
	return err
}

func (t *Transport) connForPort(port int) (net.PacketConn, error) {
	switch port {
	case OperationalPort:
		return t.operational, nil
	case CommissioningPort:
		return t.commissioning, nil
	default:
		return nil, ErrInvalidAddress
	}
}

// Stop closes both sockets and waits for the read loops to exit.
func (t *Transport) Stop() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	t.closed = true
	t.mu.Unlock()

	close(t.closeCh)
	now := time.Now()
	t.operational.SetReadDeadline(now)
	t.commissioning.SetReadDeadline(now)
	t.operational.Close()
	t.commissioning.Close()
	t.wg.Wait()
	return nil
}
