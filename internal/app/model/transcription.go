package model

import "fmt"

// Word is a word-level sub-segment with its own timing and confidence.
type Word struct {
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Word        string  `json:"word"`
	Probability float64 `json:"probability"`
}

// Segment is a time-bounded span of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// TranscriptionResult is the complete output of one engine run.
type TranscriptionResult struct {
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability"`
	Duration            float64   `json:"duration"`
	Segments            []Segment `json:"segments"`
}

// Validate checks the segment timing invariant (0 <= start <= end).
// Engines produce these values, so a violation means the engine output
// could not be trusted and the whole result is rejected.
func (r *TranscriptionResult) Validate() error {
	for i, seg := range r.Segments {
		if seg.Start < 0 {
			return fmt.Errorf("segment %d: negative start time %.3f", i, seg.Start)
		}
		if seg.Start > seg.End {
			return fmt.Errorf("segment %d: start %.3f after end %.3f", i, seg.Start, seg.End)
		}
	}
	return nil
}
