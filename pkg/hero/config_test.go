package hero

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestResolve_NilIsDefaults(t *testing.T) {
	c := Resolve(nil)
	assert.Equal(t, Defaults(), c)
	assert.Equal(t, "/signup", c.PrimaryCTAHref)
	assert.Equal(t, "/demo", c.SecondaryCTAHref)
	assert.True(t, c.ShowAnimatedBadge)
	assert.True(t, c.ShowTrustedLogos)
	assert.Equal(t, PatternGradient, c.BackgroundPattern)
	assert.Equal(t, DefaultLaunchDate(), c.LaunchDate)
	assert.Equal(t, []string{"Automation", "Intelligence", "Innovation", "Solutions"}, c.TypedStrings)
}

func TestDefaultLaunchDate_ThirtyDaysAhead(t *testing.T) {
	ahead := time.Until(DefaultLaunchDate())
	assert.LessOrEqual(t, ahead, LaunchWindow)
	assert.Greater(t, ahead, LaunchWindow-time.Hour)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(30*24*time.Hour), DefaultsAt(now).LaunchDate)
}

func TestResolve_ReplacesOnlySuppliedKeys(t *testing.T) {
	o := &Overrides{
		Title:            ptr("Ship Faster"),
		ShowTrustedLogos: ptr(false),
	}

	got := Resolve(o)
	want := Defaults()
	want.Title = "Ship Faster"
	want.ShowTrustedLogos = false
	assert.Equal(t, want, got)
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	o := &Overrides{TypedStrings: []string{"One", "Two"}}
	c := Resolve(o)
	c.TypedStrings[0] = "changed"
	assert.Equal(t, []string{"One", "Two"}, o.TypedStrings)

	d := Resolve(nil)
	d.TypedStrings[0] = "changed"
	assert.Equal(t, "Automation", Defaults().TypedStrings[0])
}

func TestResolve_EmptyTypedStringsIsSupplied(t *testing.T) {
	c := Resolve(&Overrides{TypedStrings: []string{}})
	assert.NotNil(t, c.TypedStrings)
	assert.Empty(t, c.TypedStrings)
}

func TestResolve_UnknownPatternKeepsDefault(t *testing.T) {
	c := Resolve(&Overrides{BackgroundPattern: ptr(Pattern("stripes"))})
	assert.Equal(t, PatternGradient, c.BackgroundPattern)

	c = Resolve(&Overrides{BackgroundPattern: ptr(PatternDots)})
	assert.Equal(t, PatternDots, c.BackgroundPattern)
}

func TestParseOverrides(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		o, err := ParseOverrides([]byte(`
title: Launch Week
showAnimatedBadge: false
backgroundPattern: grid
typedStrings: [Speed, Scale]
unknownKey: ignored
`))
		require.NoError(t, err)
		c := Resolve(o)
		assert.Equal(t, "Launch Week", c.Title)
		assert.False(t, c.ShowAnimatedBadge)
		assert.Equal(t, PatternGrid, c.BackgroundPattern)
		assert.Equal(t, []string{"Speed", "Scale"}, c.TypedStrings)
		assert.Equal(t, Defaults().Subtitle, c.Subtitle)
	})

	t.Run("json", func(t *testing.T) {
		o, err := ParseOverrides([]byte(`{"primaryCTAHref": "/start", "launchDate": "2030-01-02T03:04:05Z"}`))
		require.NoError(t, err)
		c := Resolve(o)
		assert.Equal(t, "/start", c.PrimaryCTAHref)
		assert.True(t, c.LaunchDate.Equal(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)))
	})

	t.Run("empty", func(t *testing.T) {
		o, err := ParseOverrides([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), Resolve(o))
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseOverrides([]byte("title: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalidOverrides)
	})
}

func TestSaveAndLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	o := &Overrides{Badge: ptr("Now live"), TypedStrings: []string{"A"}}

	for _, name := range []string{"hero.yaml", "hero.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveOverrides(path, o))

		loaded, err := LoadOverrides(path)
		require.NoError(t, err)
		assert.Equal(t, "Now live", *loaded.Badge)
		assert.Equal(t, []string{"A"}, loaded.TypedStrings)
		assert.Nil(t, loaded.Title)
	}

	data, err := os.ReadFile(filepath.Join(dir, "hero.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"badge": "Now live"`)

	_, err = LoadOverrides(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveAndLoadOverrides_EmptyPhrases(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"hero.yaml", "hero.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			o := &Overrides{}
			require.NoError(t, o.Set("typedStrings", ""))
			require.NotNil(t, o.TypedStrings)
			require.NoError(t, SaveOverrides(path, o))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "typedStrings")

			loaded, err := LoadOverrides(path)
			require.NoError(t, err)
			require.NotNil(t, loaded.TypedStrings, "explicit empty list survives a save")
			assert.Empty(t, loaded.TypedStrings)
			assert.Empty(t, Resolve(loaded).TypedStrings)
		})
	}

	// Unset phrases stay out of the file.
	path := filepath.Join(dir, "unset.json")
	require.NoError(t, SaveOverrides(path, &Overrides{Title: ptr("T")}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "typedStrings")
}

func TestOverridesSet(t *testing.T) {
	o := &Overrides{}
	require.NoError(t, o.Set("subtitle", "Hello"))
	require.NoError(t, o.Set("showTrustedLogos", "off"))
	require.NoError(t, o.Set("backgroundPattern", " Dots "))
	require.NoError(t, o.Set("launchDate", "2031-05-06T07:08:09Z"))
	require.NoError(t, o.Set("typedStrings", "One, Two,,Three"))

	c := Resolve(o)
	assert.Equal(t, "Hello", c.Subtitle)
	assert.False(t, c.ShowTrustedLogos)
	assert.Equal(t, PatternDots, c.BackgroundPattern)
	assert.Equal(t, 2031, c.LaunchDate.Year())
	assert.Equal(t, []string{"One", "Two", "Three"}, c.TypedStrings)

	assert.ErrorIs(t, o.Set("nope", "x"), ErrUnknownKey)
	assert.ErrorIs(t, o.Set("backgroundPattern", "stripes"), ErrUnknownPattern)
	assert.Error(t, o.Set("showAnimatedBadge", "perhaps"))
	assert.Error(t, o.Set("launchDate", "tomorrow"))
}

func TestOverridesFromMap(t *testing.T) {
	o := OverridesFromMap(map[string]any{
		"title":             "Mapped",
		"showAnimatedBadge": false,
		"typedStrings":      []any{"X", 3, "Y"},
		"backgroundPattern": "stripes",
		"bogus":             true,
	})

	c := Resolve(o)
	assert.Equal(t, "Mapped", c.Title)
	assert.False(t, c.ShowAnimatedBadge)
	assert.Equal(t, []string{"X", "Y"}, c.TypedStrings)
	assert.Equal(t, PatternGradient, c.BackgroundPattern)
}

func TestEditables(t *testing.T) {
	items := Editables(Defaults())
	require.Len(t, items, 11)

	keys := make([]string, len(items))
	for i, e := range items {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{
		"badge", "title", "subtitle",
		"feature1Text", "feature2Text", "feature3Text",
		"primaryCTA", "primaryCTAHref", "secondaryCTA", "secondaryCTAHref",
		"trustedByText",
	}, keys)
	assert.Equal(t, EditableLink, items[7].Kind)
	assert.Equal(t, "/signup", items[7].Value)
}
