package state

import (
	tele "gopkg.in/telebot.v4"
)

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and collected answers for a user.
type Session struct {
	State State
	Data  map[string]string
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	SetState(userID int64, st State)
	GetState(userID int64) State
	SetData(userID int64, key, value string)
	GetData(userID int64, key string) (string, bool)
	Clear(userID int64)

	InProgress(userID int64) bool

	// RegisterHandler binds a handler invoked for text received in the given state.
	RegisterHandler(st State, h tele.HandlerFunc)
	// Dispatch runs the handler registered for the user's current state, if any.
	Dispatch(c tele.Context) error
}
