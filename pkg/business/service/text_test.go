package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveTags(t *testing.T) {
	ts := NewTextService()

	assert.Equal(t, "Hello world", ts.RemoveTags("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "a & b", ts.RemoveTags("a &amp; b"))
	assert.Equal(t, "plain", ts.RemoveTags("plain"))
}

func TestRemoveLinks(t *testing.T) {
	ts := NewTextService()

	assert.Equal(t, "See  for details", ts.RemoveLinks("See https://example.com/x for details"))
	assert.Equal(t, "no links here", ts.RemoveLinks("no links here"))
}

func TestReduceToLength(t *testing.T) {
	ts := NewTextService()

	tests := []struct {
		name     string
		input    string
		length   int
		expected string
	}{
		{"fits entirely", "one two three", 100, "one two three"},
		{"cuts on word boundary", "one two three", 8, "one two"},
		{"first word too long", "enormous", 3, ""},
		{"exact fit", "one two", 7, "one two"},
		{"empty input", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ts.ReduceToLength(tt.input, tt.length))
		})
	}
}

func TestClearAndReduce(t *testing.T) {
	ts := NewTextService()

	input := "<div>Great blind. Buy at https://shop.example  now</div>"
	out := ts.ClearAndReduce(input, 1000)
	assert.Equal(t, "Great blind. Buy at now", out)

	long := "<p>" + strings.Repeat("word ", 100) + "</p>"
	assert.LessOrEqual(t, len(ts.ClearAndReduce(long, 42)), 42)
}

func TestHandleize(t *testing.T) {
	ts := NewTextService()

	tests := []struct {
		input    string
		expected string
	}{
		{"Blackout Blind - Black", "blackout-blind-black"},
		{"  Day & Night (120cm)  ", "day-night-120cm"},
		{"---", ""},
		{"Simple", "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ts.Handleize(tt.input))
		})
	}
}
