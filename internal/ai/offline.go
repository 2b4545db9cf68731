package ai

import (
	"context"
	"fmt"
	"strings"
)

// OfflineProvider produces a canned consultative reply without any
// external service. It is the terminal link of the chain and never fails.
type OfflineProvider struct {
	companyName string
}

// NewOfflineProvider builds the template fallback for the given company.
func NewOfflineProvider(companyName string) *OfflineProvider {
	return &OfflineProvider{companyName: companyName}
}

// Name implements Provider.
func (p *OfflineProvider) Name() string { return "offline" }

// Generate implements Provider. The last user message is echoed back
// verbatim inside the template.
func (p *OfflineProvider) Generate(_ context.Context, messages []Message) (string, error) {
	userText := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			userText = messages[i].Content
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for reaching out to %s!\n\n", p.companyName)
	fmt.Fprintf(&b, "You wrote: %s\n\n", userText)
	b.WriteString("For a project like this we would usually suggest a proven stack ")
	b.WriteString("(Go or Python on the backend, React on the frontend) and start ")
	b.WriteString("with a small scoped MVP.\n\n")
	b.WriteString("Send /contact and we will get back to you with an estimate.")
	return b.String(), nil
}
