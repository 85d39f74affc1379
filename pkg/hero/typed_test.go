package hero

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTyper_Cycle(t *testing.T) {
	typer := NewTyper([]string{"Go", "AI"})
	assert.Equal(t, TypeSpeed, typer.Start())
	assert.Equal(t, "", typer.Text())

	steps := []struct {
		text string
		wait time.Duration
	}{
		{"G", TypeSpeed},
		{"Go", BackDelay},
		{"G", BackSpeed},
		{"", TypeSpeed},
		{"A", TypeSpeed},
		{"AI", BackDelay},
		{"A", BackSpeed},
		{"", TypeSpeed},
		{"G", TypeSpeed},
	}
	for i, step := range steps {
		wait := typer.Next()
		assert.Equal(t, step.text, typer.Text(), "step %d", i)
		assert.Equal(t, step.wait, wait, "step %d", i)
	}
	assert.Equal(t, 0, typer.Index())
}

func TestTyper_MultiByteRunes(t *testing.T) {
	typer := NewTyper([]string{"héé"})
	typer.Next()
	typer.Next()
	assert.Equal(t, "hé", typer.Text())
}

func TestTyper_Static(t *testing.T) {
	typer := NewTyper(nil)
	assert.True(t, typer.Static())
	assert.Zero(t, typer.Next())
	assert.Equal(t, "", typer.Text())
}

func TestTyper_SinglePhraseLoops(t *testing.T) {
	typer := NewTyper([]string{"x"})
	assert.Equal(t, BackDelay, typer.Next())
	assert.Equal(t, TypeSpeed, typer.Next())
	assert.Equal(t, "", typer.Text())
	assert.Equal(t, 0, typer.Index())
}
