// Package domain contains core concepts of the chat room.
// This file defines Message records and their visibility rules.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"time"
)

// BroadcastAlias is the reserved recipient meaning "all current participants".
const BroadcastAlias = "Todos"

// Message type values. Status messages are system generated and always
// addressed to the broadcast alias.
const (
	TypeMessage = "message"
	TypePrivate = "private_message"
	TypeStatus  = "status"
)

// Texts of the system generated join/leave notices.
const (
	ArrivalText   = "entra na sala..."
	DepartureText = "sai da sala..."
)

// Message is a single chat record. Time is a HH:MM:SS stamp captured at
// insertion; ID, From and Time never change after creation.
type Message struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

var messageIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// ValidMessageID reports whether id is exactly 24 lowercase hex characters.
// Uppercase hex is rejected: externally the id contract is lowercase only.
func ValidMessageID(id string) bool {
	return messageIDPattern.MatchString(id)
}

// NewMessageID returns a fresh 24-character lowercase hex identifier.
func NewMessageID() string {
	var raw [12]byte
	_, _ = rand.Read(raw[:])
	return hex.EncodeToString(raw[:])
}

// Stamp renders the zero-padded HH:MM:SS time stamp stored on messages.
func Stamp(t time.Time) string {
	return t.Format("15:04:05")
}

// VisibleTo reports whether the message belongs in caller's message list:
// sent by the caller, addressed to the caller, or broadcast.
func (m Message) VisibleTo(caller string) bool {
	return m.From == caller || m.To == caller || m.To == BroadcastAlias
}

// NewUserMessage builds a participant-authored message stamped at instant at.
func NewUserMessage(from, to, text, messageType string, at time.Time) Message {
	return Message{
		ID:   NewMessageID(),
		From: from,
		To:   to,
		Text: text,
		Type: messageType,
		Time: Stamp(at),
	}
}

// NewStatusMessage builds a system notice (arrival or departure) for name.
func NewStatusMessage(name, text string, at time.Time) Message {
	return Message{
		ID:   NewMessageID(),
		From: name,
		To:   BroadcastAlias,
		Text: text,
		Type: TypeStatus,
		Time: Stamp(at),
	}
}
