// Package format renders a transcription result into the supported
// textual output formats. All functions are pure string builders.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"whisper-skill/internal/app/model"
)

// Output format names accepted by the CLI and the HTTP API.
const (
	FormatText     = "text"
	FormatSRT      = "srt"
	FormatJSON     = "json"
	FormatJSONFull = "json_full"
)

// Known reports whether name is a supported output format.
func Known(name string) bool {
	switch name {
	case FormatText, FormatSRT, FormatJSON, FormatJSONFull:
		return true
	}
	return false
}

// Render formats the result with the named format. now is the generation
// time stamped into the text header.
func Render(result *model.TranscriptionResult, name string, now time.Time) (string, error) {
	switch name {
	case FormatText:
		return Text(result, now), nil
	case FormatSRT:
		return SRT(result), nil
	case FormatJSON:
		return JSON(result, false)
	case FormatJSONFull:
		return JSON(result, true)
	default:
		return "", fmt.Errorf("unknown output format: %s", name)
	}
}

// Timestamp formats seconds as HH:MM:SS.mmm.
func Timestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := math.Mod(seconds, 60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}

// TimestampSRT formats seconds in SRT style, HH:MM:SS,mmm.
func TimestampSRT(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := int(math.Mod(seconds, 60))
	millis := int(math.Mod(seconds, 1) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Text renders the plain-text format: comment header lines followed by
// one "[start -> end] text" line per segment.
func Text(result *model.TranscriptionResult, now time.Time) string {
	lines := []string{
		"# Transcription",
		fmt.Sprintf("# Language: %s (confidence: %.2f%%)", result.Language, result.LanguageProbability*100),
		fmt.Sprintf("# Duration: %.1f seconds", result.Duration),
		fmt.Sprintf("# Generated: %s", now.Format("2006-01-02 15:04:05")),
		"",
	}

	for _, seg := range result.Segments {
		lines = append(lines, fmt.Sprintf("[%.2fs -> %.2fs] %s", seg.Start, seg.End, seg.Text))
	}

	return strings.Join(lines, "\n")
}

// SRT renders numbered subtitle cues separated by blank lines.
func SRT(result *model.TranscriptionResult) string {
	var lines []string

	for i, seg := range result.Segments {
		lines = append(lines,
			strconv.Itoa(i+1),
			fmt.Sprintf("%s --> %s", TimestampSRT(seg.Start), TimestampSRT(seg.End)),
			seg.Text,
			"",
		)
	}

	return strings.Join(lines, "\n")
}

type jsonWord struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Word        string  `json:"word"`
	Probability float64 `json:"probability"`
}

type jsonSegment struct {
	Start float64    `json:"start"`
	End   float64    `json:"end"`
	Text  string     `json:"text"`
	Words []jsonWord `json:"words,omitempty"`
}

type jsonDocument struct {
	Language            string        `json:"language"`
	LanguageProbability float64       `json:"language_probability"`
	Duration            float64       `json:"duration"`
	Segments            []jsonSegment `json:"segments"`
}

// JSON renders the summary JSON document. With full set, segments carry
// their word-level timings when the engine produced them; the summary
// form never includes words.
func JSON(result *model.TranscriptionResult, full bool) (string, error) {
	doc := jsonDocument{
		Language:            result.Language,
		LanguageProbability: result.LanguageProbability,
		Duration:            result.Duration,
		Segments: lo.Map(result.Segments, func(seg model.Segment, _ int) jsonSegment {
			out := jsonSegment{Start: seg.Start, End: seg.End, Text: seg.Text}
			if full && len(seg.Words) > 0 {
				out.Words = lo.Map(seg.Words, func(w model.Word, _ int) jsonWord {
					return jsonWord{Start: w.Start, End: w.End, Word: w.Word, Probability: w.Probability}
				})
			}
			return out
		}),
	}
	if doc.Segments == nil {
		doc.Segments = []jsonSegment{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
