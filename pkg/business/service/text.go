package service

import (
	"html"
	"regexp"
	"strings"
)

type ITextService interface {
	RemoveTags(input string) string
	RemoveLinks(input string) string
	ReduceToLength(input string, length int) string
	ClearAndReduce(input string, length int) string
	Handleize(input string) string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	linkPattern      = regexp.MustCompile(`https?://[^\s]+`)
	nonHandlePattern = regexp.MustCompile(`[^a-z0-9]+`)
)

func (ts *TextService) RemoveTags(input string) string {
	return tagPattern.ReplaceAllString(html.UnescapeString(input), "")
}

func (ts *TextService) RemoveLinks(input string) string {
	return linkPattern.ReplaceAllString(input, "")
}

// ReduceToLength cuts input to at most length bytes without breaking words.
func (ts *TextService) ReduceToLength(input string, length int) string {
	var builder strings.Builder
	words := strings.Fields(input)
	totalLength := 0

	for i, word := range words {
		if totalLength+len(word) > length {
			break
		}

		if i > 0 {
			builder.WriteString(" ")
			totalLength++
		}

		builder.WriteString(word)
		totalLength += len(word)
	}

	return builder.String()
}

func (ts *TextService) ClearAndReduce(input string, length int) string {
	cleaned := ts.RemoveTags(input)
	cleaned = ts.RemoveLinks(cleaned)
	return ts.ReduceToLength(strings.TrimSpace(cleaned), length)
}

// Handleize converts a title into a marketplace handle slug.
func (ts *TextService) Handleize(input string) string {
	handle := strings.ToLower(strings.TrimSpace(input))
	handle = nonHandlePattern.ReplaceAllString(handle, "-")
	return strings.Trim(handle, "-")
}
