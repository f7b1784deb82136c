package controller

import (
	"bytes"
	"encoding/json"

	"kibitzer/internal/cards"
	"kibitzer/internal/session"
)

// Kind identifies what produced a Message and how it is fanned out.
type Kind int

const (
	KindChat Kind = iota
	KindDeal
	KindExchange
	KindOffer
	KindInit
	KindJoin
	KindNicname
	KindPickup
	KindPutDown
	KindRevoke
	KindRoom
	KindShuffle
	KindSkip
	KindExit
)

var kindNames = [...]string{
	KindChat:     "chat",
	KindDeal:     "deal",
	KindExchange: "exchange",
	KindOffer:    "offer",
	KindInit:     "init",
	KindJoin:     "join",
	KindNicname:  "nicname",
	KindPickup:   "pickup",
	KindPutDown:  "putdown",
	KindRevoke:   "revoke",
	KindRoom:     "room",
	KindShuffle:  "shuffle",
	KindSkip:     "skip",
	KindExit:     "exit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// redacted kinds carry a hand, so each recipient gets the room state
// rebuilt around their own cards.
func (k Kind) redacted() bool {
	switch k {
	case KindDeal, KindExchange, KindPickup, KindPutDown, KindRevoke, KindSkip:
		return true
	}
	return false
}

// Message is one reply produced by the controller.
type Message struct {
	Kind Kind
	// Data is the JSON envelope for the requester.
	Data []byte
	// Broadcast is set when everyone in Room should hear about it.
	Broadcast bool
	Room      int
	// Notice is the text other players see when the message is redacted.
	Notice string
	// Round is set when the message ended a round.
	Round *RoundResult
}

// RoundResult records a finished round.
type RoundResult struct {
	Room   int
	Game   string
	Winner string
	Scores []Score
}

// Score is one player's points at the end of a round.
type Score struct {
	Nic    string
	Points int
}

type envelope struct {
	ID   string `json:"id"`
	Data any    `json:"data"`
}

type cardsPayload struct {
	Pile      cards.Hand  `json:"pile"`
	Message   string      `json:"message"`
	Turn      int         `json:"turn"`
	FaceDown  bool        `json:"faceDown"`
	Game      string      `json:"game"`
	Hand      *cards.Hand `json:"hand,omitempty"`
	SessionID int         `json:"sessionId,omitempty"`
}

type playersPayload struct {
	Message     string                `json:"message"`
	Players     []session.PlayerEntry `json:"players"`
	Turn        *int                  `json:"turn,omitempty"`
	DealID      int                   `json:"dealId,omitempty"`
	ClearHandID int                   `json:"clearHandId,omitempty"`
	Game        string                `json:"game,omitempty"`
}

type initPayload struct {
	Welcome   string                `json:"welcome"`
	SessionID int                   `json:"sessionId"`
	Players   []session.PlayerEntry `json:"players"`
}

type exchangePayload struct {
	FromID  int        `json:"fromId"`
	From    string     `json:"from"`
	ToID    int        `json:"toId"`
	Hand    cards.Hand `json:"hand"`
	Message string     `json:"message"`
}

type exitPayload struct {
	ID      int                   `json:"id"`
	Players []session.PlayerEntry `json:"players"`
	Name    string                `json:"name"`
}

// encode wraps data in the {"id","data"} envelope. Messages carry HTML
// fragments for the web client, so HTML escaping is off.
func encode(id string, data any) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(envelope{ID: id, Data: data})
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func chatData(text string) []byte { return encode("message", text) }
