package hero

import (
	"fmt"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// CountdownInterval is how often the live countdown is refreshed.
const CountdownInterval = time.Second

// LaunchedText replaces the numeric breakdown once the launch date passes.
const LaunchedText = "🎉 Launched!"

// Remaining is a time span broken into display units.
type Remaining struct {
	Days      int
	Hours     int
	Minutes   int
	Seconds   int
	Completed bool
}

// Until decomposes the span between now and target. A target at or before
// now yields a completed, all-zero value.
func Until(target, now time.Time) Remaining {
	total := target.Sub(now).Truncate(time.Millisecond)
	if total <= 0 {
		return Remaining{Completed: true}
	}
	secs := int64(total / time.Second)
	return Remaining{
		Days:    int(secs / 86400),
		Hours:   int(secs / 3600 % 24),
		Minutes: int(secs / 60 % 60),
		Seconds: int(secs % 60),
	}
}

// CountdownView renders the badge readout for r. Seconds are never shown.
func CountdownView(r Remaining) g.Node {
	if r.Completed {
		return h.Span(h.Class("countdown-launched"), g.Text(LaunchedText))
	}
	return h.Div(h.Class("countdown"),
		countdownField(r.Days, "days"),
		h.Span(h.Class("countdown-sep"), g.Text(":")),
		countdownField(r.Hours, "hrs"),
		h.Span(h.Class("countdown-sep"), g.Text(":")),
		countdownField(r.Minutes, "min"),
	)
}

func countdownField(n int, unit string) g.Node {
	return h.Div(h.Class("countdown-field"),
		h.Span(h.Class("countdown-value"), g.Text(fmt.Sprintf("%d", n))),
		h.Span(h.Class("countdown-unit"), g.Text(unit)),
	)
}
