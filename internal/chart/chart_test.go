package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_FitsWidth(t *testing.T) {
	s := DefaultSeries()
	for _, width := range []int{MinWidth, 20, 40, 80, 100, 133} {
		out := Render(s, width, PlainStyles())
		lines := strings.Split(out, "\n")
		require.Len(t, lines, len(s.Points)+1, "title plus one line per point")
		for _, line := range lines {
			assert.LessOrEqual(t, runewidth.StringWidth(line), width, "width=%d line=%q", width, line)
		}
	}
}

func TestRender_BarsScaleToPeak(t *testing.T) {
	s := Series{Points: []Point{
		{Label: "a", Value: 10},
		{Label: "b", Value: 5},
		{Label: "c", Value: 0},
	}}
	out := Render(s, 40, PlainStyles())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	full := strings.Count(lines[0], barRune)
	half := strings.Count(lines[1], barRune)
	assert.Greater(t, full, 0)
	assert.InDelta(t, full/2, half, 1)
	assert.Equal(t, 0, strings.Count(lines[2], barRune))
}

func TestRender_NegativeValueHasNoBar(t *testing.T) {
	s := Series{Points: []Point{{Label: "up", Value: 3}, {Label: "down", Value: -3}}}
	lines := strings.Split(Render(s, 30, PlainStyles()), "\n")
	assert.Equal(t, 0, strings.Count(lines[1], barRune))
	assert.Contains(t, lines[1], "-3")
}

func TestRender_TruncatesLongLabels(t *testing.T) {
	s := Series{Points: []Point{{Label: strings.Repeat("x", 50), Value: 1}}}
	out := Render(s, 30, PlainStyles())
	assert.Contains(t, out, "…")
	assert.LessOrEqual(t, runewidth.StringWidth(out), 30)
}

func TestRender_WideRunes(t *testing.T) {
	s := Series{Points: []Point{{Label: "木星", Value: 4333}, {Label: "火星", Value: 687}}}
	for _, line := range strings.Split(Render(s, 24, PlainStyles()), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 24)
	}
}

func TestRender_TooNarrow(t *testing.T) {
	out := Render(DefaultSeries(), MinWidth-1, PlainStyles())
	assert.NotContains(t, out, barRune)
	assert.LessOrEqual(t, runewidth.StringWidth(out), MinWidth-1)

	assert.Equal(t, "", Render(DefaultSeries(), 0, PlainStyles()))
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "(no data)", Render(Series{}, 40, PlainStyles()))
}

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "series.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
title: Builds
points:
  - label: mon
    value: 3
  - label: tue
    value: 7.5
`), 0644))

	jsonPath := filepath.Join(dir, "series.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"title":"Builds","points":[{"label":"mon","value":3},{"label":"tue","value":7.5}]}`), 0644))

	for _, path := range []string{yamlPath, jsonPath} {
		s, err := LoadSeries(path)
		require.NoError(t, err, path)
		assert.Equal(t, "Builds", s.Title)
		assert.Equal(t, []Point{{"mon", 3}, {"tue", 7.5}}, s.Points)
	}
}

func TestLoadSeries_Default(t *testing.T) {
	s, err := LoadSeries("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSeries(), s)
}

func TestLoadSeries_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSeries(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("title: nothing\n"), 0644))
	_, err = LoadSeries(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("points: [\n"), 0644))
	_, err = LoadSeries(bad)
	assert.Error(t, err)
}

func TestRender_TruncatedWideLabelsStayAligned(t *testing.T) {
	s := Series{Points: []Point{
		{Label: "日本語のラベルです", Value: 5},
		{Label: "🚀 rocket launch window", Value: 3},
		{Label: "ok", Value: 1},
	}}
	for _, width := range []int{31, 40, 41} {
		out := Render(s, width, PlainStyles())
		for _, line := range strings.Split(out, "\n") {
			assert.Equal(t, width, runewidth.StringWidth(line), "width=%d line=%q", width, line)
		}
	}
}
