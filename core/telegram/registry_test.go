package telegram

import (
	"os"
	"testing"

	"github.com/m3rciful/leadbot/core/logger"
	"github.com/m3rciful/leadbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

func noopHandler(tele.Context) error { return nil }

func TestLookupCommandRequiresSlash(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/services", commands.Command{
		Handler:     noopHandler,
		Description: "list services",
	})

	if _, _, ok := reg.LookupCommand("/services"); !ok {
		t.Fatal("slash-prefixed lookup should match")
	}
	if _, _, ok := reg.LookupCommand("services"); ok {
		t.Fatal("bare text must not match a command implicitly")
	}
	if _, _, ok := reg.LookupCommand("/unknown"); ok {
		t.Fatal("unknown command should miss")
	}
}

func TestLookupCommandAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     noopHandler,
		Description: "greeting",
		Aliases:     []string{"hello"},
	})

	key, _, ok := reg.LookupCommand("hello")
	if !ok || key != "/start" {
		t.Fatalf("alias lookup = (%q, %v)", key, ok)
	}
	key, _, ok = reg.LookupCommand("/hello")
	if !ok || key != "/start" {
		t.Fatalf("slash alias lookup = (%q, %v)", key, ok)
	}
}

func TestListCommandsFiltersHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "greeting"})
	reg.RegisterCommand("/debug", commands.Command{Handler: noopHandler, Description: "internal", Hidden: true})

	if got := len(reg.ListCommands(true)); got != 1 {
		t.Fatalf("visible commands = %d", got)
	}
	if got := len(reg.ListCommands(false)); got != 2 {
		t.Fatalf("all commands = %d", got)
	}
}

func TestRegisterCallbackDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("svc", noopHandler); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.RegisterCallback("svc", noopHandler); err == nil {
		t.Fatal("duplicate registration should fail")
	}
}
