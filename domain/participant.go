// Package domain contains core concepts of the chat room.
// This file defines Participant entities and their liveness rules.
// No runtime, network, or storage logic should be added here.
package domain

import "time"

// Participant is a registered chat identity. Name is the primary key:
// no separate numeric ID exists, lookups always go through the name.
type Participant struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"` // milliseconds since epoch, refreshed by heartbeats
}

// NowMillis converts a wall-clock instant to the lastStatus representation.
func NowMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// IdleLongerThan reports whether the participant has been silent strictly
// longer than the given threshold at instant now.
func (p Participant) IdleLongerThan(threshold time.Duration, now time.Time) bool {
	return NowMillis(now)-p.LastStatus > threshold.Milliseconds()
}
