package app

import (
	"context"
	"log"
	"time"
)

// Entry is one scheduled job: a clock time, an optional weekday restriction,
// and the function to run.
type Entry struct {
	Name   string
	At     string        // "15:04" wall-clock time
	Day    *time.Weekday // nil = every day
	Run    func() error
	minute int // minute of day parsed from At
}

// Scheduler fires jobs at fixed times of day. Jobs run sequentially on the
// scheduler goroutine: the browser and the publisher are shared, so only one
// job owns them at a time. An entry is due from its minute until end of day,
// so a job whose minute passes while an earlier job is still running fires on
// the next check instead of being dropped.
type Scheduler struct {
	entries []Entry
	now     func() time.Time
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Add registers a job at a daily wall-clock time
func (s *Scheduler) Add(name, at string, run func() error) {
	s.add(Entry{Name: name, At: at, Run: run})
}

// AddWeekly registers a job that fires only on the given weekday
func (s *Scheduler) AddWeekly(name string, day time.Weekday, at string, run func() error) {
	s.add(Entry{Name: name, At: at, Day: &day, Run: run})
}

func (s *Scheduler) add(e Entry) {
	t, err := time.Parse("15:04", e.At)
	if err != nil {
		log.Printf("⚠️  Not scheduling %s: bad time %q", e.Name, e.At)
		return
	}
	e.minute = t.Hour()*60 + t.Minute()
	s.entries = append(s.entries, e)
}

// Start runs the dispatch loop until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("⏰ Scheduler started with %d jobs", len(s.entries))

	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	// fired holds the last date each entry ran, keyed by entry name, so it
	// stays bounded by the timetable size
	fired := make(map[string]string)
	s.primeFired(s.now(), fired)

	for {
		select {
		case <-ticker.C:
			s.runDue(s.now(), fired)
		case <-ctx.Done():
			log.Println("⏰ Scheduler stopped")
			return
		}
	}
}

// primeFired marks entries already past their time as fired for today, so a
// mid-day restart does not replay the morning's timetable
func (s *Scheduler) primeFired(now time.Time, fired map[string]string) {
	for _, e := range s.entries {
		if due(e, now) {
			fired[e.Name] = now.Format("2006-01-02")
		}
	}
}

// runDue fires every entry whose time has been reached today and which has
// not already fired today. A failing job is logged and never stops the loop.
func (s *Scheduler) runDue(now time.Time, fired map[string]string) {
	day := now.Format("2006-01-02")
	for _, e := range s.entries {
		if !due(e, now) || fired[e.Name] == day {
			continue
		}
		fired[e.Name] = day

		log.Printf("⏰ Running job: %s", e.Name)
		start := time.Now()
		if err := e.Run(); err != nil {
			log.Printf("⚠️  Job %s failed: %v", e.Name, err)
			continue
		}
		log.Printf("✅ Job %s finished in %s", e.Name, time.Since(start).Round(time.Millisecond))
	}
}

// due reports whether the entry's time has been reached today. At-or-after,
// not exact match: a long-running predecessor must not eat a later minute.
func due(e Entry, now time.Time) bool {
	if e.Day != nil && *e.Day != now.Weekday() {
		return false
	}
	return now.Hour()*60+now.Minute() >= e.minute
}
