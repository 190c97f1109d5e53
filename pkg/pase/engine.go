package pase

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"sync"
	"time"

	"flarebridge/matter-core/pkg/crypto"
	"flarebridge/matter-core/pkg/crypto/spake2p"
	"flarebridge/matter-core/pkg/session"
)

// Engine drives one PASE handshake attempt as the verifier (Section
// 4.5). It is not reusable across handshakes: construct a new Engine
// per attempt, e.g. on receipt of a PBKDFParamRequest.
type Engine struct {
	mu sync.Mutex

	pin  []byte
	salt []byte

	localSessionID uint16
	spake          *spake2p.SPAKE2P

	pbkdfReqBytes  []byte
	pbkdfRespBytes []byte

	state    State
	lastSeen time.Time

	rand io.Reader
}

// NewEngine creates an idle PASE engine bound to the device's setup PIN.
func NewEngine(pin []byte) (*Engine, error) {
	if err := spake2p.ValidatePasscode(pin); err != nil {
		return nil, err
	}
	return &Engine{
		pin:      pin,
		state:    StateIdle,
		lastSeen: time.Now(),
		rand:     rand.Reader,
	}, nil
}

// State returns the current handshake state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stalled reports whether the engine has been idle past StallTimeout
// without reaching StateCompleted or StateError.
func (e *Engine) Stalled(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateCompleted || e.state == StateError {
		return false
	}
	return now.Sub(e.lastSeen) > StallTimeout
}

// Reset returns the engine to StateIdle, discarding any in-progress
// handshake state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Engine) resetLocked() {
	e.salt = nil
	e.spake = nil
	e.pbkdfReqBytes = nil
	e.pbkdfRespBytes = nil
	e.localSessionID = 0
	e.state = StateIdle
}

// HandlePBKDFParamRequest answers a PBKDFParamRequest with a fresh salt
// and the device's chosen iteration count, and computes the SPAKE2+
// verifier point L (Section 4.5, step 1).
func (e *Engine) HandlePBKDFParamRequest(reqData []byte, localSessionID uint16) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle && e.state != StateInitialized {
		return nil, ErrInvalidState
	}
	e.state = StatePbkdfReqReceived
	e.lastSeen = time.Now()

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(e.rand, salt); err != nil {
		return nil, err
	}

	w0, w1, err := spake2p.ComputeW0W1(e.pin, salt)
	if err != nil {
		return nil, err
	}
	L := spake2p.ComputeL(w1)

	resp := &PBKDFParamResponse{Iterations: spake2p.PBKDFIterations, Salt: salt}
	respData, err := resp.Encode()
	if err != nil {
		return nil, err
	}

	e.salt = salt
	e.localSessionID = localSessionID
	e.pbkdfReqBytes = reqData
	e.pbkdfRespBytes = respData

	context := e.transcriptContext()
	spakeVerifier, err := spake2p.NewVerifier(context, nil, nil, w0, L)
	if err != nil {
		return nil, err
	}
	e.spake = spakeVerifier

	e.state = StatePbkdfRespSent
	return respData, nil
}

func (e *Engine) transcriptContext() []byte {
	h := sha256.New()
	h.Write([]byte(ContextPrefix))
	h.Write(e.pbkdfReqBytes)
	h.Write(e.pbkdfRespBytes)
	return h.Sum(nil)
}

// HandlePake1 processes PAKE1, generating the device's share pB
// (Section 4.5, step 2).
func (e *Engine) HandlePake1(data []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePbkdfRespSent {
		return nil, ErrInvalidState
	}
	e.lastSeen = time.Now()

	pake1, err := DecodePake1(data)
	if err != nil {
		return nil, err
	}

	pB, err := e.spake.GenerateShare()
	if err != nil {
		return nil, err
	}
	if err := e.spake.ProcessPeerShare(pake1.PA); err != nil {
		return nil, err
	}

	e.state = StatePake1Received

	pake2 := &Pake2{PB: pB}
	pake2Data, err := pake2.Encode()
	if err != nil {
		return nil, err
	}

	e.state = StatePake2Sent
	return pake2Data, nil
}

// HandlePake3 verifies the controller's confirmation tag and, on
// success, installs the derived session key into mgr under sessionID
// (Section 4.5, steps 3-4), returning the id the session was actually
// installed under (sessionID itself, or the table's auto-allocated id
// if sessionID was 0). A confirmation mismatch transitions the engine
// to StateError and does not install anything, per the Open Questions
// note that this verification must not be skipped.
func (e *Engine) HandlePake3(data []byte, sessionID uint16, mgr *session.Manager) (uint16, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePake2Sent {
		return 0, ErrInvalidState
	}
	e.lastSeen = time.Now()

	pake3, err := DecodePake3(data)
	if err != nil {
		return 0, err
	}

	if err := e.spake.VerifyPeerConfirmation(pake3.CA); err != nil {
		e.state = StateError
		e.zeroizeLocked()
		return 0, ErrConfirmationFailed
	}
	e.state = StatePake3Received

	key, err := e.deriveSessionKey(sessionID)
	if err != nil {
		e.state = StateError
		e.zeroizeLocked()
		return 0, err
	}

	installed, err := mgr.Install(sessionID, key)
	if err != nil {
		e.state = StateError
		e.zeroizeLocked()
		return 0, err
	}

	e.state = StateCompleted
	e.zeroizeLocked()
	return installed.ID, nil
}

// zeroizeLocked wipes intermediate handshake secrets once they are no
// longer needed, per Section 4.5's teardown requirement. Caller must
// hold e.mu.
func (e *Engine) zeroizeLocked() {
	for i := range e.salt {
		e.salt[i] = 0
	}
	e.spake = nil
}

func (e *Engine) deriveSessionKey(sessionID uint16) ([session.KeySize]byte, error) {
	var key [session.KeySize]byte

	ke := e.spake.SharedSecret()
	info := []byte{byte(sessionID >> 8), byte(sessionID)}
	derived, err := crypto.HKDFSHA256(ke, []byte(SessionKeyInfo), info, SessionKeySize)
	if err != nil {
		return key, err
	}
	copy(key[:], derived)
	return key, nil
}
