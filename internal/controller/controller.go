// Package controller turns text commands from connected players into game
// state changes and the JSON messages each player should receive.
//
// A single mutex guards every player and room. Each command runs to
// completion under it, including the turn advance, the revoke snapshot and
// the per-recipient redaction of its broadcast.
package controller

import (
	"errors"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"kibitzer/internal/game"
	"kibitzer/internal/session"
)

const cmdSize = 5

var (
	ErrUnknownSession = errors.New("session not found")
	ErrShortCommand   = errors.New("command too short")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoRooms        = errors.New("at least one room is required")
	ErrNoSlots        = errors.New("rooms need at least one slot")
)

// Controller owns the player directory and the rooms.
type Controller struct {
	mu      sync.Mutex
	log     *zap.Logger
	dir     *session.Directory
	nextID  int
	welcome string
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	log     *zap.Logger
	rng     *rand.Rand
	welcome string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRand sets the shuffle source shared by every room's deck.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithWelcome sets the greeting sent in reply to init.
func WithWelcome(text string) Option {
	return func(o *options) { o.welcome = text }
}

// New creates a controller with one room per rules entry, each with the
// given number of seats.
func New(rooms []game.Rules, slots int, opts ...Option) (*Controller, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRooms
	}
	if slots < 1 {
		return nil, ErrNoSlots
	}
	o := options{welcome: "<p>kibitzer"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	rs := make([]*session.Room, len(rooms))
	for i, rules := range rooms {
		rs[i] = session.NewRoom(i, rules, slots, o.rng)
	}
	return &Controller{
		log:     o.log,
		dir:     session.NewDirectory(rs),
		nextID:  1,
		welcome: o.welcome,
	}, nil
}

// CreateSession registers a new connection as a lurker in the first room.
func (c *Controller) CreateSession() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.dir.Add(session.NewPlayer(id))
	c.log.Info("create session", zap.Int("session", id))
	return id
}

// DestroySession removes a session and returns the exit notice for the
// room it was in. Unknown sessions return false.
func (c *Controller) DestroySession(sessionID int) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroy(sessionID)
}

func (c *Controller) destroy(sessionID int) (Message, bool) {
	p, ok := c.dir.Get(sessionID)
	if !ok {
		c.log.Info("session not found", zap.Int("session", sessionID))
		return Message{}, false
	}
	r := c.room(p)
	name := p.Name()
	c.dir.Remove(sessionID)
	if r.Turn == sessionID {
		r.Turn = c.nextAfter(r, sessionID)
	}
	c.log.Info("destroy session", zap.Int("session", sessionID), zap.Int("room", r.Number()))
	return Message{
		Kind:      KindExit,
		Data:      encode("exit", exitPayload{ID: sessionID, Players: c.dir.PlayerList(r), Name: name}),
		Broadcast: true,
		Room:      r.Index,
	}, true
}

// Handle runs one raw command for a session. Malformed input returns an
// error and no message.
func (c *Controller) Handle(sessionID int, raw []byte) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle(sessionID, raw)
}

func (c *Controller) handle(sessionID int, raw []byte) (Message, error) {
	p, ok := c.dir.Get(sessionID)
	if !ok {
		c.log.Warn("session not found", zap.Int("session", sessionID))
		return Message{}, ErrUnknownSession
	}
	if len(raw) < cmdSize {
		c.log.Warn("invalid message", zap.Int("session", sessionID), zap.ByteString("raw", raw))
		return Message{}, ErrShortCommand
	}
	tag, arg := string(raw[:cmdSize]), string(raw[cmdSize:])
	var msg Message
	switch tag {
	case "chat:":
		msg = c.chat(p, arg)
	case "deal:":
		msg = c.deal(p)
	case "exch:":
		msg = c.exchange(p, arg)
	case "init:":
		msg = c.greet(p)
	case "join:":
		msg = c.join(p, arg)
	case "nicn:":
		msg = c.nic(p, arg)
	case "picu:":
		msg = c.pickup(p, arg)
	case "putd:":
		msg = c.putdown(p, arg)
	case "room:":
		msg = c.changeRoom(p, arg)
	case "shuf:":
		msg = c.shuffle(p, arg)
	case "skip:":
		msg = c.skip(p)
	default:
		c.log.Warn("invalid message", zap.Int("session", sessionID), zap.ByteString("raw", raw))
		return Message{}, ErrUnknownCommand
	}
	c.log.Debug("handled",
		zap.Int("session", sessionID),
		zap.Stringer("command", msg.Kind),
		zap.Bool("broadcast", msg.Broadcast))
	return msg, nil
}

// Redact rebuilds a game-state broadcast for another recipient so it shows
// that recipient's own hand. Other messages are returned unchanged.
func (c *Controller) Redact(sessionID int, msg Message) Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redact(sessionID, msg)
}

func (c *Controller) redact(sessionID int, msg Message) Message {
	if !msg.Kind.redacted() {
		return msg
	}
	out := msg
	if p, ok := c.dir.Get(sessionID); ok {
		out.Data = c.cards(p, c.room(p), msg.Notice)
	} else if r, ok := c.dir.Room(msg.Room); ok {
		out.Data = c.cards(nil, r, msg.Notice)
	}
	return out
}

// IsSameRoom reports whether both sessions exist and share a room.
func (c *Controller) IsSameRoom(a, b int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSameRoom(a, b)
}

func (c *Controller) isSameRoom(a, b int) bool {
	pa, okA := c.dir.Get(a)
	pb, okB := c.dir.Get(b)
	return okA && okB && pa.Room == pb.Room
}

// Delivery is a payload addressed to one session.
type Delivery struct {
	SessionID int
	Data      []byte
}

// Outcome is everything a command produced.
type Outcome struct {
	Deliveries []Delivery
	Round      *RoundResult
}

// Dispatch handles a command and computes every delivery it causes under
// one lock: the reply to the requester and, for broadcasts, a redacted copy
// for each other session in the requester's room.
func (c *Controller) Dispatch(sessionID int, raw []byte) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, err := c.handle(sessionID, raw)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{
		Deliveries: []Delivery{{SessionID: sessionID, Data: msg.Data}},
		Round:      msg.Round,
	}
	if msg.Broadcast {
		for _, other := range c.dir.Players() {
			if other.ID != sessionID && c.isSameRoom(other.ID, sessionID) {
				out.Deliveries = append(out.Deliveries, Delivery{
					SessionID: other.ID,
					Data:      c.redact(other.ID, msg).Data,
				})
			}
		}
	}
	return out, nil
}

// Disconnect destroys a session and addresses the exit notice to everyone
// left in its room.
func (c *Controller) Disconnect(sessionID int) []Delivery {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg, ok := c.destroy(sessionID)
	if !ok {
		return nil
	}
	var out []Delivery
	for _, p := range c.dir.InRoom(msg.Room) {
		out = append(out, Delivery{SessionID: p.ID, Data: msg.Data})
	}
	return out
}

// RoomInfo summarizes a room for listings.
type RoomInfo struct {
	Number   int       `json:"number"`
	Game     game.Info `json:"game"`
	Slots    int       `json:"slots"`
	Seated   int       `json:"seated"`
	Watching int       `json:"watching"`
	Turn     int       `json:"turn"`
}

// Rooms lists every room.
func (c *Controller) Rooms() []RoomInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	rooms := c.dir.Rooms()
	out := make([]RoomInfo, len(rooms))
	for i, r := range rooms {
		seated := len(c.dir.Seated(r))
		out[i] = RoomInfo{
			Number:   r.Number(),
			Game:     r.Rules.Info(),
			Slots:    len(r.Slots),
			Seated:   seated,
			Watching: len(c.dir.InRoom(r.Index)) - seated,
			Turn:     r.Turn,
		}
	}
	return out
}

func (c *Controller) room(p *session.Player) *session.Room {
	r, _ := c.dir.Room(p.Room)
	return r
}
