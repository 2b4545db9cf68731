// Package state provides a lightweight FSM/session manager for Telegram bots.
// It is intentionally domain-agnostic so conversation flows register their own
// states and per-state handlers.
package state
