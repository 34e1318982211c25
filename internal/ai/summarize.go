package ai

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/credential"
)

// Messages shown in place of a summary.
const (
	MockSummary = "API Key not configured. Please set the " + credential.SummarizerEnv + " environment variable " +
		"or run `flowstate key set`. " +
		"This is a mock summary. The AI feature helps you condense long documents into key points, " +
		"making it easier to grasp the main ideas quickly."
	TooShortSummary = "The document is too short to summarize. Please add more content."
	FailedSummary   = "An error occurred while trying to summarize the text."
)

// MinSummaryLength is the shortest trimmed text worth summarizing.
const MinSummaryLength = 50

// Summarize always returns displayable text. Failures are logged through the
// logger carried by ctx and replaced with FailedSummary.
func Summarize(ctx context.Context, s Summarizer, text string) string {
	if s == nil || !s.Ready() {
		return MockSummary
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinSummaryLength {
		return TooShortSummary
	}

	out, err := s.Summarize(ctx, text)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("summarizing text")
		return FailedSummary
	}
	return out
}
