package app

import (
	"fmt"
	"strings"

	"github.com/m3rciful/leadbot/core/telegram/format"
	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"
	"github.com/m3rciful/leadbot/core/telegram/keyboard"
	"github.com/m3rciful/leadbot/internal/memory"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	if a.fsm.InProgress(c.Sender().ID) {
		return a.fsm.Dispatch(c)
	}

	greeting := fmt.Sprintf(
		"Hi! I'm the %s assistant.\n\n"+
			"I can tell you what we build and at what price, and collect your "+
			"contact details so the team gets back to you.\n\n"+
			"/services — what we offer\n"+
			"/contact — leave a request\n"+
			"/cancel — stop the current conversation\n\n"+
			"Or just describe your project and I'll suggest how to approach it.",
		a.cfg.Company.Name,
	)

	a.memory.Remember(c.Sender().ID, memory.RoleAssistant, greeting)
	return tghelpers.SendText(c, greeting)
}

func (a *App) handleServices(c tele.Context) error {
	if a.fsm.InProgress(c.Sender().ID) {
		return a.fsm.Dispatch(c)
	}

	entries := a.services.Entries()
	buttons := make([]keyboard.InlineBtn, 0, len(entries))
	for _, e := range entries {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("%s (from %s)", e.Name, e.StartsFrom),
			Unique: serviceCallbackKey,
			Data:   e.Key,
		})
	}

	var b strings.Builder
	b.WriteString("*Our services*\n\n")
	for _, e := range entries {
		name, err := format.EscapeMarkdown(e.Name, format.MarkdownV1)
		if err != nil {
			name = e.Name
		}
		fmt.Fprintf(&b, "• %s — from %s\n", name, e.StartsFrom)
	}
	b.WriteString("\nTap a service for details.")

	return tghelpers.SendMD(c, b.String(), keyboard.InlineButtons(buttons))
}

func (a *App) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	if !a.fsm.InProgress(userID) {
		return tghelpers.SendText(c, "Nothing to cancel. Send /contact to leave a request.")
	}
	a.fsm.Clear(userID)
	return tghelpers.SendText(c, "Cancelled. You can start over with /contact whenever you like.")
}
