package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"whisper-skill/internal/app/model"
	"whisper-skill/internal/config"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
// The hosted API always runs the whisper-1 model, so model size, device
// and compute type from the config do not apply here. Word timestamps are
// not available from this provider.
type RemoteTranscriber struct {
	client *openai.Client
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client) *RemoteTranscriber {
	return &RemoteTranscriber{client: client}
}

// Transcribe uses the OpenAI API for remote transcription, requesting the
// verbose response so segment timings are preserved.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audioPath string, cfg config.Transcription) (*model.TranscriptionResult, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if code, ok := cfg.LanguageHint(); ok {
		req.Language = code
	}

	var resp openai.AudioResponse
	var err error
	if cfg.Task == "translate" {
		resp, err = rt.client.CreateTranslation(ctx, req)
	} else {
		resp, err = rt.client.CreateTranscription(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("openai transcription failed: %w", err)
	}

	result := &model.TranscriptionResult{
		Language: resp.Language,
		Duration: float64(resp.Duration),
		Segments: make([]model.Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, model.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("openai returned invalid segments: %w", err)
	}
	return result, nil
}
