package browser

import (
	"fmt"
	"log"
	"time"
)

// Navigator opens a target URL in a fresh session and blocks until the page's
// readiness marker has rendered
type Navigator struct {
	browser Browser
}

// NewNavigator creates a navigator on top of a Browser capability
func NewNavigator(b Browser) *Navigator {
	return &Navigator{browser: b}
}

// Navigate opens url in a new session and waits for readinessSelector to
// appear. On success the caller owns the returned session and must close it;
// on any failure the session is already closed. There is no retry here,
// the scheduler's next tick is the retry policy.
func (n *Navigator) Navigate(url, readinessSelector string, timeout time.Duration) (Session, error) {
	session, err := n.browser.OpenSession()
	if err != nil {
		return nil, fmt.Errorf("Navigate: %w", err)
	}

	if err := session.Navigate(url); err != nil {
		session.Close()
		return nil, fmt.Errorf("Navigate: %w", err)
	}

	if err := session.WaitFor(readinessSelector, timeout); err != nil {
		session.Close()
		return nil, fmt.Errorf("Navigate %s: %s: %w", url, readinessSelector, ErrNavigationTimeout)
	}

	log.Printf("✅ Page loaded: %s", url)
	return session, nil
}
