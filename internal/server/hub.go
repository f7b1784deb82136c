package server

import (
	"sync"

	"go.uber.org/zap"

	"kibitzer/internal/controller"
)

const sendBuffer = 64

// hub maps session ids to the outgoing queues of their connections.
type hub struct {
	mu    sync.Mutex
	log   *zap.Logger
	conns map[int]chan []byte
}

func newHub(log *zap.Logger) *hub {
	return &hub{log: log, conns: make(map[int]chan []byte)}
}

// add registers a queue for a session.
func (h *hub) add(sessionID int) chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	send := make(chan []byte, sendBuffer)
	h.conns[sessionID] = send
	return send
}

// run calls produce and queues what it returns while holding the hub lock,
// so deliveries from one command are never interleaved with another's.
func (h *hub) run(produce func() []controller.Delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range produce() {
		h.sendLocked(d)
	}
}

// remove closes a session's queue and queues what leave returns for the
// sessions that remain.
func (h *hub) remove(sessionID int, leave func() []controller.Delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.conns[sessionID]; ok {
		delete(h.conns, sessionID)
		close(send)
	}
	for _, d := range leave() {
		h.sendLocked(d)
	}
}

func (h *hub) sendLocked(d controller.Delivery) {
	send, ok := h.conns[d.SessionID]
	if !ok {
		return
	}
	select {
	case send <- d.Data:
	default:
		h.log.Warn("dropping message for slow connection", zap.Int("session", d.SessionID))
	}
}
