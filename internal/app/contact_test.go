package app

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m3rciful/leadbot/internal/leads"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the slice of tele.Context the flow handlers
// touch; everything else panics loudly through the embedded interface.
type fakeContext struct {
	tele.Context
	user     *tele.User
	text     string
	callback *tele.Callback
	sent     []string
	values   map[string]any
}

func newFakeContext(userID int64, username string) *fakeContext {
	return &fakeContext{
		user:   &tele.User{ID: userID, Username: username},
		values: make(map[string]any),
	}
}

func (c *fakeContext) Sender() *tele.User        { return c.user }
func (c *fakeContext) Chat() *tele.Chat          { return &tele.Chat{ID: c.user.ID} }
func (c *fakeContext) Update() tele.Update       { return tele.Update{ID: 1} }
func (c *fakeContext) Text() string              { return c.text }
func (c *fakeContext) Callback() *tele.Callback  { return c.callback }
func (c *fakeContext) Get(key string) any        { return c.values[key] }
func (c *fakeContext) Set(key string, value any) { c.values[key] = value }

func (c *fakeContext) Send(what any, _ ...any) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func (c *fakeContext) EditOrSend(what any, _ ...any) error {
	return c.Send(what)
}

func (c *fakeContext) lastSent() string {
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1]
}

func newFlowApp(t *testing.T) (*App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	store := leads.NewStore(path)
	if err := store.EnsureInitialized(); err != nil {
		t.Fatalf("store init: %v", err)
	}
	a, err := New(Options{Config: testConfig(t), Store: store})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return rows
}

func TestContactFlowWritesSingleLead(t *testing.T) {
	a, path := newFlowApp(t)
	c := newFakeContext(1, "ali")

	c.text = "/contact"
	if err := a.handleContact(c); err != nil {
		t.Fatalf("contact: %v", err)
	}
	if got := a.fsm.GetState(1); got != StateContactName {
		t.Fatalf("state = %q", got)
	}

	c.text = "Ali"
	if err := a.fsm.Dispatch(c); err != nil {
		t.Fatalf("name step: %v", err)
	}
	if got := a.fsm.GetState(1); got != StateContactEmail {
		t.Fatalf("state = %q", got)
	}

	c.text = "not-an-email"
	if err := a.fsm.Dispatch(c); err != nil {
		t.Fatalf("invalid email step: %v", err)
	}
	if got := a.fsm.GetState(1); got != StateContactEmail {
		t.Fatalf("invalid email advanced state to %q", got)
	}
	if !strings.Contains(c.lastSent(), "email") {
		t.Fatalf("expected re-prompt, got %q", c.lastSent())
	}
	if rows := readRows(t, path); len(rows) != 1 {
		t.Fatalf("partial session reached the store: %d rows", len(rows))
	}

	c.text = "ali@example.com"
	if err := a.fsm.Dispatch(c); err != nil {
		t.Fatalf("email step: %v", err)
	}
	if got := a.fsm.GetState(1); got != StateContactNote {
		t.Fatalf("state = %q", got)
	}

	c.text = "need a website"
	if err := a.fsm.Dispatch(c); err != nil {
		t.Fatalf("note step: %v", err)
	}
	if a.fsm.InProgress(1) {
		t.Fatal("session survived completion")
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header plus one lead", len(rows))
	}
	row := rows[1]
	if row[1] != "Ali" || row[2] != "ali@example.com" || row[6] != "need a website" {
		t.Fatalf("lead row = %v", row)
	}
	if row[3] != "general" {
		t.Fatalf("need = %q, want general", row[3])
	}
	if row[4] != "tg://user?id=1" || row[5] != "ali" {
		t.Fatalf("identity fields = %q / %q", row[4], row[5])
	}
}

func TestCancelBeforeCompletionWritesNothing(t *testing.T) {
	a, path := newFlowApp(t)
	c := newFakeContext(2, "eve")

	c.text = "/contact"
	if err := a.handleContact(c); err != nil {
		t.Fatalf("contact: %v", err)
	}
	c.text = "Eve"
	if err := a.fsm.Dispatch(c); err != nil {
		t.Fatalf("name step: %v", err)
	}

	c.text = "/cancel"
	if err := a.handleCancel(c); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if a.fsm.InProgress(2) {
		t.Fatal("session survived cancel")
	}
	if rows := readRows(t, path); len(rows) != 1 {
		t.Fatalf("cancelled session reached the store: %d rows", len(rows))
	}
}

func TestServicePickPrefillsNeed(t *testing.T) {
	a, path := newFlowApp(t)
	c := newFakeContext(3, "bob")

	c.callback = &tele.Callback{Data: "\fsvc|web"}
	if err := a.handleServiceCallback(c); err != nil {
		t.Fatalf("service callback: %v", err)
	}
	if a.fsm.InProgress(3) {
		t.Fatal("service pick must not open a session")
	}
	c.callback = nil

	c.text = "/contact"
	if err := a.handleContact(c); err != nil {
		t.Fatalf("contact: %v", err)
	}
	for _, msg := range []string{"Bob", "bob@example.com", "mvp first"} {
		c.text = msg
		if err := a.fsm.Dispatch(c); err != nil {
			t.Fatalf("step %q: %v", msg, err)
		}
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1][3] != "web" {
		t.Fatalf("need = %q, want web", rows[1][3])
	}
}
