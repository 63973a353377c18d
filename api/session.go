package api

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/lookbusy1344/riscv-stm32-core/riscv"
	"github.com/lookbusy1344/riscv-stm32-core/timer"
)

// broadcastIRQ adapts a Broadcaster into a timer.IRQLine: every pulse
// becomes an "irq" execution event on the owning session's channel.
type broadcastIRQ struct {
	sessionID   string
	broadcaster *Broadcaster
}

func (b *broadcastIRQ) Pulse() {
	b.broadcaster.BroadcastExecutionEvent(b.sessionID, "irq", nil)
}

// Session pairs one timer instance with one encoder buffer, the two
// components the API exposes (spec.md §1).
type Session struct {
	ID        string
	CreatedAt time.Time

	Clock *timer.SimClock
	Timer *timer.Timer

	Buffer  *riscv.Buffer
	Encoder *riscv.Encoder
}

// SessionManager tracks live sessions, keyed by ID.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	broadcaster *Broadcaster
}

// NewSessionManager creates an empty session manager.
func NewSessionManager(broadcaster *Broadcaster) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: broadcaster,
	}
}

// Create builds a new session with a fresh timer and encoder buffer.
func (m *SessionManager) Create(req SessionCreateRequest) *Session {
	id := newSessionID()

	clock := timer.NewSimClock()
	irq := &broadcastIRQ{sessionID: id, broadcaster: m.broadcaster}
	tm := timer.New(clock, irq)
	if req.TicksPerSecond != 0 {
		tm.TicksPerSecond = req.TicksPerSecond
	}
	tm.FixDutyCycleFormula = req.FixDutyCycleFormula

	buf := riscv.NewBuffer()
	enc := riscv.NewEncoder(buf, req.RV64)

	sess := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Clock:     clock,
		Timer:     tm,
		Buffer:    buf,
		Encoder:   enc,
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	return sess
}

// Get retrieves a session by ID.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Destroy removes a session.
func (m *SessionManager) Destroy(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func newSessionID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// TimerSnapshot reads the session's 19 registers into the wire format.
func (s *Session) TimerSnapshot() TimerRegistersResponse {
	snap := s.Timer.Snapshot()
	return TimerRegistersResponse{
		CR1: snap.CR1, CR2: snap.CR2, SMCR: snap.SMCR, DIER: snap.DIER,
		SR: snap.SR, EGR: snap.EGR, CCMR1: snap.CCMR1, CCMR2: snap.CCMR2,
		CCER: snap.CCER, CNT: snap.CNT, PSC: snap.PSC, ARR: snap.ARR,
		CCR1: snap.CCR1, CCR2: snap.CCR2, CCR3: snap.CCR3, CCR4: snap.CCR4,
		DCR: snap.DCR, DMAR: snap.DMAR, OR: snap.OR,
	}
}
