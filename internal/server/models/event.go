package models

import "time"

// Event is one analytics record sent by a client.
type Event struct {
	ID         int64
	Name       string
	Data       map[string]any
	ClientID   string
	ReceivedAt time.Time
}

// EventCount is the number of events recorded under one name.
type EventCount struct {
	Name  string
	Count int64
}
