package app

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/m3rciful/leadbot/core/logger"
	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"
	"github.com/m3rciful/leadbot/core/telegram/state"
	"github.com/m3rciful/leadbot/internal/leads"

	tele "gopkg.in/telebot.v4"
)

// Contact flow states.
const (
	StateContactName  state.State = "contact:name"
	StateContactEmail state.State = "contact:email"
	StateContactNote  state.State = "contact:note"
)

// Session data keys.
const (
	dataKeyName  = "name"
	dataKeyEmail = "email"
	dataKeyNeed  = "need"
)

const defaultNeed = "general"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s passes the contact flow email check.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

func (a *App) registerContactFlow() {
	a.fsm.RegisterHandler(StateContactName, a.handleContactName)
	a.fsm.RegisterHandler(StateContactEmail, a.handleContactEmail)
	a.fsm.RegisterHandler(StateContactNote, a.handleContactNote)
}

func (a *App) handleContact(c tele.Context) error {
	userID := c.Sender().ID
	if a.fsm.InProgress(userID) {
		return a.fsm.Dispatch(c)
	}

	a.fsm.SetState(userID, StateContactName)
	return tghelpers.SendText(c, "Great, let's get you connected with the team.\n\nWhat's your name?")
}

func (a *App) handleContactName(c tele.Context) error {
	userID := c.Sender().ID
	name := strings.TrimSpace(c.Text())
	if name == "" {
		return tghelpers.SendText(c, "Please send your name as text.")
	}

	a.fsm.SetData(userID, dataKeyName, name)
	a.fsm.SetState(userID, StateContactEmail)
	return tghelpers.SendText(c, fmt.Sprintf("Nice to meet you, %s! What's your email?", name))
}

func (a *App) handleContactEmail(c tele.Context) error {
	userID := c.Sender().ID
	email := strings.TrimSpace(c.Text())
	if !ValidEmail(email) {
		return tghelpers.SendText(c, "That doesn't look like an email. Try again, e.g. name@example.com")
	}

	a.fsm.SetData(userID, dataKeyEmail, email)
	a.fsm.SetState(userID, StateContactNote)
	return tghelpers.SendText(c, "And finally, describe your project or question in a couple of sentences.")
}

func (a *App) handleContactNote(c tele.Context) error {
	sender := c.Sender()
	userID := sender.ID
	note := strings.TrimSpace(c.Text())

	name, _ := a.fsm.GetData(userID, dataKeyName)
	email, _ := a.fsm.GetData(userID, dataKeyEmail)
	need, ok := a.fsm.GetData(userID, dataKeyNeed)
	if !ok || need == "" {
		need = defaultNeed
	}

	rec := leads.Record{
		Timestamp: time.Now().UTC(),
		Name:      name,
		Email:     email,
		Need:      need,
		From:      fmt.Sprintf("tg://user?id=%d", userID),
		Username:  sender.Username,
		Note:      note,
	}

	if err := a.store.Append(rec); err != nil {
		ctx := tghelpers.BuildContext(c)
		logger.Leads.LogAttrs(ctx, slog.LevelError, "lead write failed",
			slog.String("event", "append"),
			slog.Int64("user_id", userID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}

	a.fsm.Clear(userID)
	return tghelpers.SendText(c, fmt.Sprintf(
		"Thanks, %s! Your request is in. The team will reach out to %s shortly.",
		name, email,
	))
}
