// Package notifications delivers formatted briefs to the outbound
// social-media sink. The sink is fire-and-forget: failures are logged, never
// retried. The next scheduled job is the retry policy.
package notifications

import "log"

// Publisher posts one text message and returns the provider's message ID
type Publisher interface {
	Publish(text string) (string, error)
}

// Send publishes text through p, enforcing the sink contract: empty content
// is never sent, and failures are logged without retry.
func Send(p Publisher, text string) {
	if text == "" {
		log.Println("ℹ️  No content to publish")
		return
	}

	id, err := p.Publish(text)
	if err != nil {
		log.Printf("⚠️  Failed to publish: %v", err)
		return
	}

	log.Printf("✅ Published %s: %q", id, preview(text))
}

// preview truncates on rune boundaries so emoji in tweet text never get cut
// mid-sequence in the log
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= 50 {
		return text
	}
	return string(runes[:50]) + "..."
}

// DryRunPublisher logs instead of posting, for local runs
type DryRunPublisher struct{}

// Publish logs the message and reports success
func (DryRunPublisher) Publish(text string) (string, error) {
	log.Printf("📣 [dry-run] would publish:\n%s", text)
	return "dry-run", nil
}
