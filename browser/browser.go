// Package browser wraps headless-browser automation behind a small capability
// surface so the scraping pipeline never touches the driver directly. The
// production implementation drives Playwright; tests substitute fakes.
package browser

import (
	"errors"
	"time"
)

// ErrNavigationTimeout is returned when a page's readiness marker never
// appears within the configured bound. The job owning the navigation aborts;
// nothing downstream runs against a half-rendered page.
var ErrNavigationTimeout = errors.New("navigation timeout: readiness marker not found")

// ErrPaginationRunaway is returned when a "load more" control survives more
// clicks than the configured cap allows
var ErrPaginationRunaway = errors.New("pagination runaway: load-more control never disappeared")

// Element is a handle to a rendered DOM node
type Element interface {
	// Text returns the element's visible text
	Text() (string, error)
	// Attribute returns the named attribute, or "" when absent
	Attribute(name string) (string, error)
	// Find locates a descendant by selector; (nil, nil) when absent
	Find(selector string) (Element, error)
	// Click activates the element
	Click() error
}

// Page is a loaded document ready for querying
type Page interface {
	// Find locates the first match for selector; (nil, nil) when absent
	Find(selector string) (Element, error)
	// FindAll snapshots every current match for selector
	FindAll(selector string) ([]Element, error)
	// WaitFor blocks until selector is present or the timeout elapses
	WaitFor(selector string, timeout time.Duration) error
}

// Session is an exclusively-owned browser tab. The acquiring job must close
// it on every exit path.
type Session interface {
	Page
	Navigate(url string) error
	Close() error
}

// Browser opens fresh sessions, one per scraping job invocation
type Browser interface {
	OpenSession() (Session, error)
}
