package browser

import (
	"log"
	"time"
)

// ExpandAll repeatedly activates a "load more" control until it disappears,
// pausing settleDelay after each click for the new rows to render. Absence of
// the control is the normal termination condition. The pages offer no
// completion signal, so the settle delay is a fixed sleep rather than an
// event wait.
//
// maxClicks caps the loop so a page with endless pagination surfaces as
// ErrPaginationRunaway instead of a hang. Returns the number of clicks
// performed.
func ExpandAll(page Page, loadMoreSelector string, settleDelay time.Duration, maxClicks int) (int, error) {
	clicks := 0
	for {
		control, err := page.Find(loadMoreSelector)
		if err != nil {
			log.Printf("⚠️  Error locating load-more control: %v", err)
			return clicks, nil
		}
		if control == nil {
			log.Printf("✅ All rows loaded after %d load-more clicks", clicks)
			return clicks, nil
		}

		if clicks >= maxClicks {
			return clicks, ErrPaginationRunaway
		}

		if err := control.Click(); err != nil {
			// Control present but not clickable: the page has nothing more to give
			log.Printf("⚠️  Load-more control not clickable, stopping: %v", err)
			return clicks, nil
		}
		clicks++
		time.Sleep(settleDelay)
	}
}
