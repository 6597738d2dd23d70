package serve

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"whisper-skill/internal/api/v1/handlers"
	"whisper-skill/internal/api/v1/routes"
	"whisper-skill/internal/app/api/provider"
	"whisper-skill/internal/app/repository"
	"whisper-skill/internal/app/skill"
	"whisper-skill/internal/app/util/logger"
)

var (
	addr    string
	verbose bool
)

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose request logging")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transcription engine over HTTP",
	Long: `Serve the transcription engine over HTTP.

Exposes the engine and the run history as a small JSON API:
- POST /api/v1/transcriptions  multipart upload, synchronous transcription
- GET  /api/v1/history         recent runs
- GET  /healthz, GET /metrics  liveness and Prometheus metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		skillDir, err := skill.Dir()
		if err != nil {
			log.Fatalf("Failed to resolve skill directory: %v\n", err)
		}

		zl := logger.MustNew(verbose)
		defer zl.Sync()

		cfg, err := provider.LoadConfiguration(filepath.Join(skillDir, "providers.yaml"))
		if err != nil {
			log.Fatal(err)
		}
		env := skill.NewEnvironment(skillDir)
		engine, err := provider.NewTranscriber(cfg, env.Python(), zl)
		if err != nil {
			log.Fatal(err)
		}

		dao, err := repository.Open(skillDir)
		if err != nil {
			log.Fatal(err)
		}
		defer dao.Close()

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}
		router := gin.Default()
		routes.Register(router, handlers.NewTranscriptionHandler(engine, dao, zl))

		if err := router.Run(addr); err != nil {
			log.Fatal(err)
		}
	},
}
