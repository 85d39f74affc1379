package hero

import "time"

// Typing cadence for the headline phrase.
const (
	TypeSpeed   = 100 * time.Millisecond
	BackSpeed   = 50 * time.Millisecond
	BackDelay   = 2000 * time.Millisecond
	TypedCursor = "|"
)

// Typer cycles through phrases one character at a time: it types a phrase,
// holds it for BackDelay, erases it and moves on, looping forever.
type Typer struct {
	phrases  [][]rune
	index    int
	shown    int
	deleting bool

	TypeSpeed time.Duration
	BackSpeed time.Duration
	BackDelay time.Duration
}

// NewTyper returns a typer over phrases with the standard cadence.
func NewTyper(phrases []string) *Typer {
	t := &Typer{
		phrases:   make([][]rune, len(phrases)),
		TypeSpeed: TypeSpeed,
		BackSpeed: BackSpeed,
		BackDelay: BackDelay,
	}
	for i, p := range phrases {
		t.phrases[i] = []rune(p)
	}
	return t
}

// Static reports whether there is nothing to animate.
func (t *Typer) Static() bool {
	return len(t.phrases) == 0
}

// Text returns the visible part of the current phrase.
func (t *Typer) Text() string {
	if t.Static() {
		return ""
	}
	return string(t.phrases[t.index][:t.shown])
}

// Index returns which phrase is being typed or erased.
func (t *Typer) Index() int {
	return t.index
}

// Start returns the delay before the first keystroke.
func (t *Typer) Start() time.Duration {
	return t.TypeSpeed
}

// Next performs one keystroke and returns the delay before the following
// one. A static typer never advances and returns zero.
func (t *Typer) Next() time.Duration {
	if t.Static() {
		return 0
	}
	cur := t.phrases[t.index]
	if !t.deleting {
		if t.shown < len(cur) {
			t.shown++
		}
		if t.shown >= len(cur) {
			t.deleting = true
			return t.BackDelay
		}
		return t.TypeSpeed
	}
	if t.shown > 0 {
		t.shown--
	}
	if t.shown == 0 {
		t.deleting = false
		t.index = (t.index + 1) % len(t.phrases)
		return t.TypeSpeed
	}
	return t.BackSpeed
}
