package app

import (
	"fmt"

	"github.com/m3rciful/leadbot/core/telegram/callbacks"
	"github.com/m3rciful/leadbot/core/telegram/format"
	tghelpers "github.com/m3rciful/leadbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const serviceCallbackKey = "svc"

func (a *App) registerCallbacks() {
	_ = a.registry.RegisterCallback(serviceCallbackKey, a.handleServiceCallback)
}

func (a *App) handleServiceCallback(c tele.Context) error {
	key := callbacks.CallbackPayload(c)
	entry, ok := a.services.Lookup(key)
	if !ok {
		return tghelpers.SendText(c, "That service is no longer available, please try again with /services.")
	}

	// Remember the picked service so a later /contact pre-fills the need.
	a.fsm.SetData(c.Sender().ID, dataKeyNeed, entry.Key)

	name, err := format.EscapeMarkdown(entry.Name, format.MarkdownV1)
	if err != nil {
		name = entry.Name
	}
	desc, err := format.EscapeMarkdown(entry.Description, format.MarkdownV1)
	if err != nil {
		desc = entry.Description
	}

	text := fmt.Sprintf(
		"*%s*\n\n%s\n\nStarting from %s.\n\nSend /contact and we will discuss your project.",
		name, desc, entry.StartsFrom,
	)
	return tghelpers.EditOrSendMD(c, text)
}
