package server

import (
	"net/http"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"kibitzer/internal/controller"
)

// readLimit bounds one command frame.
const readLimit = 4096

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for dev
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(readLimit)

	ctx := r.Context()
	id := s.ctrl.CreateSession()
	send := s.hub.add(id)
	log := s.log.With(zap.Int("session", id))
	log.Info("connected", zap.String("remote", r.RemoteAddr))

	// Writer goroutine: send messages from the channel to the websocket
	go func() {
		for msg := range send {
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}()

	// Reader loop: every frame is one command
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		s.dispatch(id, data)
	}

	s.hub.remove(id, func() []controller.Delivery { return s.ctrl.Disconnect(id) })
	log.Info("disconnected")
}

func (s *Server) dispatch(id int, data []byte) {
	var round *controller.RoundResult
	s.hub.run(func() []controller.Delivery {
		out, err := s.ctrl.Dispatch(id, data)
		if err != nil {
			// malformed input gets no reply
			return nil
		}
		round = out.Round
		return out.Deliveries
	})
	s.recordRound(round)
}
