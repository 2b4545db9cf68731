package app

import (
	"strings"

	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"
	"github.com/m3rciful/leadbot/internal/memory"

	tele "gopkg.in/telebot.v4"
)

// handleChat answers free text through the provider chain. The user
// message and the reply are both remembered so the next turn has context.
func (a *App) handleChat(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return nil
	}

	ctx := tghelpers.BuildContext(c)
	transcript := a.memory.Snapshot(userID)

	reply, _ := a.chain.Reply(ctx, text, transcript)

	a.memory.Remember(userID, memory.RoleUser, text)
	a.memory.Remember(userID, memory.RoleAssistant, reply)

	return tghelpers.SendText(c, reply)
}
