package scrape

import "math/rand"

// Mover is a transient pre-market/highs-lows row. Movers feed tweets
// directly and are never persisted.
type Mover struct {
	Ticker        string
	PercentChange string
	MarketCap     float64 // dollars
}

// FilterAndSample keeps movers above minMarketCap, returns every known
// (index-member) ticker in original order, then up to sampleSize of the
// remaining tickers drawn uniformly without replacement. rng is injected so
// tests can seed it; production passes an unseeded source.
func FilterAndSample(records []Mover, known map[string]struct{}, minMarketCap float64, sampleSize int, rng *rand.Rand) []Mover {
	var knownPart, otherPart []Mover
	for _, r := range records {
		if r.MarketCap <= minMarketCap {
			continue
		}
		if _, ok := known[r.Ticker]; ok {
			knownPart = append(knownPart, r)
		} else {
			otherPart = append(otherPart, r)
		}
	}

	n := sampleSize
	if n > len(otherPart) {
		n = len(otherPart)
	}

	out := make([]Mover, 0, len(knownPart)+n)
	out = append(out, knownPart...)

	if n > 0 {
		perm := rng.Perm(len(otherPart))
		for _, idx := range perm[:n] {
			out = append(out, otherPart[idx])
		}
	}

	return out
}
