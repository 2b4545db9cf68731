package app

import (
	"os"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/leadbot/core/config"
	"github.com/m3rciful/leadbot/core/logger"
	"github.com/m3rciful/leadbot/internal/leads"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(nil)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) *coreconfig.Config {
	t.Helper()
	cfg := &coreconfig.Config{}
	cfg.Telegram.Token = "123:test"
	if err := coreconfig.Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return cfg
}

func testApp(t *testing.T) *App {
	t.Helper()
	store := leads.NewStore(filepath.Join(t.TempDir(), "leads.csv"))
	if err := store.EnsureInitialized(); err != nil {
		t.Fatalf("store init: %v", err)
	}
	a, err := New(Options{Config: testConfig(t), Store: store})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestNewRegistersSurface(t *testing.T) {
	a := testApp(t)
	reg := a.Registry()

	for _, cmd := range []string{"/start", "/services", "/contact", "/cancel"} {
		if _, _, ok := reg.LookupCommand(cmd); !ok {
			t.Fatalf("command %s not registered", cmd)
		}
	}

	if _, ok := reg.GetCallback(serviceCallbackKey); !ok {
		t.Fatal("svc callback not registered")
	}
	if reg.TextFallback() == nil {
		t.Fatal("text fallback not wired")
	}

	if len(reg.ListCommands(true)) != 4 {
		t.Fatalf("visible commands = %d", len(reg.ListCommands(true)))
	}
}

func TestNewRejectsMissingDeps(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := New(Options{Config: testConfig(t)}); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestTelegramRunOptions(t *testing.T) {
	a := testApp(t)
	opts, err := a.TelegramRunOptions()
	if err != nil {
		t.Fatalf("run options: %v", err)
	}
	if opts.Config == nil || opts.Registry == nil {
		t.Fatal("incomplete run options")
	}
	// 4 commands + callback route + text route.
	if len(opts.Routes) != 6 {
		t.Fatalf("routes = %d", len(opts.Routes))
	}
	if len(opts.Middlewares) == 0 {
		t.Fatal("middlewares missing")
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "name.last@example.com", "  padded@example.org  "}
	for _, s := range valid {
		if !ValidEmail(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com", "a@.com "}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}
