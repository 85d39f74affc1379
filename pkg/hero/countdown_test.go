package hero

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	g "maragu.dev/gomponents"
)

func html(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func TestUntil(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   Remaining
	}{
		{
			name:   "mixed units",
			target: now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 500*time.Millisecond),
			want:   Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5},
		},
		{
			name:   "under a second",
			target: now.Add(999 * time.Millisecond),
			want:   Remaining{},
		},
		{
			name:   "sub-millisecond counts as reached",
			target: now.Add(500 * time.Microsecond),
			want:   Remaining{Completed: true},
		},
		{
			name:   "exactly now",
			target: now,
			want:   Remaining{Completed: true},
		},
		{
			name:   "in the past",
			target: now.Add(-time.Hour),
			want:   Remaining{Completed: true},
		},
		{
			name:   "thirty days",
			target: now.Add(LaunchWindow),
			want:   Remaining{Days: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Until(tt.target, now))
		})
	}
}

func TestCountdownView_Running(t *testing.T) {
	out := html(t, CountdownView(Remaining{Days: 12, Hours: 5, Minutes: 9, Seconds: 41}))

	assert.Contains(t, out, `<span class="countdown-value">12</span><span class="countdown-unit">days</span>`)
	assert.Contains(t, out, `<span class="countdown-value">5</span><span class="countdown-unit">hrs</span>`)
	assert.Contains(t, out, `<span class="countdown-value">9</span><span class="countdown-unit">min</span>`)
	assert.NotContains(t, out, "41")
	assert.NotContains(t, out, LaunchedText)
	assert.Equal(t, 2, strings.Count(out, `class="countdown-sep"`))
}

func TestCountdownView_CompletedIgnoresNumbers(t *testing.T) {
	out := html(t, CountdownView(Remaining{Days: 3, Completed: true}))
	assert.Equal(t, `<span class="countdown-launched">`+LaunchedText+`</span>`, out)
}
