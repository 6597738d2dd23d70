package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whisper-skill/internal/api/middleware"
	"whisper-skill/internal/app/api"
	"whisper-skill/internal/app/format"
	"whisper-skill/internal/app/model"
	"whisper-skill/internal/app/repository"
	"whisper-skill/internal/config"

	"github.com/google/uuid"
)

// TranscriptionHandler serves transcription requests and run history.
type TranscriptionHandler struct {
	engine  api.Transcriber
	history repository.RunDAO
	logger  *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler.
func NewTranscriptionHandler(engine api.Transcriber, history repository.RunDAO, logger *zap.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{
		engine:  engine,
		history: history,
		logger:  logger,
	}
}

// Health handles GET /healthz.
func (h *TranscriptionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// History handles GET /api/v1/history. The limit query parameter caps
// the number of runs returned (default 20).
func (h *TranscriptionHandler) History(c *gin.Context) {
	limit := 20
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	runs, err := h.history.Recent(limit)
	if err != nil {
		h.logger.Error("history query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": toHistoryResponse(runs)})
}

type historyEntry struct {
	ID                  string  `json:"id"`
	AudioFile           string  `json:"audio_file"`
	ModelSize           string  `json:"model_size"`
	Language            string  `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
	Format              string  `json:"format"`
	OutputPath          string  `json:"output_path,omitempty"`
	CreatedAt           string  `json:"created_at"`
	Error               string  `json:"error,omitempty"`
}

func toHistoryResponse(runs []model.Run) []historyEntry {
	out := make([]historyEntry, 0, len(runs))
	for _, r := range runs {
		out = append(out, historyEntry{
			ID:                  r.ID,
			AudioFile:           r.AudioFile,
			ModelSize:           r.ModelSize,
			Language:            r.Language,
			LanguageProbability: r.LanguageProbability,
			Duration:            r.Duration,
			Format:              r.Format,
			OutputPath:          r.OutputPath,
			CreatedAt:           r.CreatedAt.Format(time.RFC3339),
			Error:               r.ErrorMessage,
		})
	}
	return out
}

// Create handles POST /api/v1/transcriptions: a multipart upload with a
// "file" part and optional form fields mirroring the CLI flags. The
// engine runs synchronously and the full JSON document is returned.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	upload, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	cfg, err := configFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpDir, err := os.MkdirTemp("", "wskill-upload-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage upload"})
		return
	}
	defer os.RemoveAll(tmpDir)

	audioPath := filepath.Join(tmpDir, filepath.Base(upload.Filename))
	if err := c.SaveUploadedFile(upload, audioPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage upload"})
		return
	}

	start := time.Now()
	result, err := h.engine.Transcribe(c.Request.Context(), audioPath, cfg)
	middleware.TranscriptionDuration.Observe(time.Since(start).Seconds())

	h.record(upload.Filename, cfg, result, err)
	if err != nil {
		h.logger.Error("transcription failed", zap.String("file", upload.Filename), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	body, err := format.JSON(result, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
}

// configFromForm layers form fields over the defaults, same precedence
// rules as the CLI.
func configFromForm(c *gin.Context) (config.Transcription, error) {
	cfg := config.Default()
	o := config.Overrides{}

	if v, ok := c.GetPostForm("model"); ok {
		o.ModelSize = &v
	}
	if v, ok := c.GetPostForm("device"); ok {
		o.Device = &v
	}
	if v, ok := c.GetPostForm("compute_type"); ok {
		o.ComputeType = &v
	}
	if v, ok := c.GetPostForm("language"); ok {
		o.Language = &v
	}
	if v, ok := c.GetPostForm("task"); ok {
		o.Task = &v
	}
	if v, ok := c.GetPostForm("beam_size"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, err
		}
		o.BeamSize = &n
	}
	if v, ok := c.GetPostForm("vad_filter"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, err
		}
		o.VADFilter = &b
	}
	if v, ok := c.GetPostForm("word_timestamps"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, err
		}
		o.WordTimestamps = &b
	}

	return cfg.Apply(o), nil
}

func (h *TranscriptionHandler) record(audioFile string, cfg config.Transcription, result *model.TranscriptionResult, runErr error) {
	run := model.Run{
		ID:        uuid.NewString(),
		AudioFile: audioFile,
		ModelSize: cfg.ModelSize,
		Format:    format.FormatJSONFull,
		CreatedAt: time.Now(),
	}
	if result != nil {
		run.Language = result.Language
		run.LanguageProbability = result.LanguageProbability
		run.Duration = result.Duration
	}
	if runErr != nil {
		run.HasError = true
		run.ErrorMessage = runErr.Error()
	}
	if err := h.history.Record(run); err != nil {
		h.logger.Warn("failed to record run history", zap.Error(err))
	}
}
