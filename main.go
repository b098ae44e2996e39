package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/ThisisBizness/Study-Buddy/pkg/api/handler"
	"github.com/ThisisBizness/Study-Buddy/pkg/api/middleware"
	"github.com/ThisisBizness/Study-Buddy/pkg/gemini"
	"github.com/ThisisBizness/Study-Buddy/pkg/logger"
	"github.com/ThisisBizness/Study-Buddy/pkg/markdown"
	"github.com/ThisisBizness/Study-Buddy/pkg/openai"
	"github.com/ThisisBizness/Study-Buddy/pkg/repository"
	"github.com/ThisisBizness/Study-Buddy/pkg/solver"
	"github.com/ThisisBizness/Study-Buddy/pkg/workers"
)

type Config struct {
	Host                  string        `env:"HOST" envDefault:"0.0.0.0"`
	Port                  int           `env:"PORT" envDefault:"5000"`
	LLMProvider           string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	MockMode              bool          `env:"MOCK_MODE" envDefault:"false"`
	GoogleAPIKey          string        `env:"GOOGLE_API_KEY"`
	GeminiModelName       string        `env:"GEMINI_MODEL_NAME" envDefault:"gemini-2.5-pro-exp-03-25"`
	GeminiTemperature     float32       `env:"GEMINI_TEMPERATURE" envDefault:"0.2"`
	GeminiMaxOutputTokens int           `env:"GEMINI_MAX_OUTPUT_TOKENS" envDefault:"2048"`
	OpenAIToken           string        `env:"OPEN_AI_TOKEN"`
	OpenAIModel           string        `env:"OPEN_AI_MODEL" envDefault:"gpt-4o"`
	SessionTTL            time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	MaxContentMB          int64         `env:"MAX_CONTENT_MB" envDefault:"16"`
	HighlightCode         bool          `env:"HIGHLIGHT_CODE" envDefault:"true"`
}

func main() {
	_ = godotenv.Load()

	opts := *logger.DefaultOptions
	if os.Getenv("NO_COLOR") != "" {
		opts.NoColor = true
	}
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &opts)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	problemSolver, err := buildSolver(cfg)
	if err != nil {
		return nil, err
	}

	maxBodyBytes := cfg.MaxContentMB * 1024 * 1024
	sessions := repository.NewSessionRepository(cfg.SessionTTL)
	renderer := markdown.Renderer{HighlightCode: cfg.HighlightCode}

	solveHandler := handler.NewSolve(problemSolver, maxBodyBytes)
	healthHandler := handler.NewHealth()
	chatHandler := handler.NewChatPage(sessions, problemSolver, renderer, maxBodyBytes)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", healthHandler.HandleHealth)
	mux.HandleFunc("/api/solve", solveHandler.HandleSolve)
	mux.HandleFunc("/chat", chatHandler.HandleSubmit)
	mux.HandleFunc("/", chatHandler.HandleIndex)

	root := middleware.RequestID(middleware.Logging(mux))

	var workerGroup workers.Group

	server, err := workers.NewHTTPServer(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), root)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}
	workerGroup = append(workerGroup, server)

	probe, err := workers.NewSolverProbe(problemSolver)
	if err != nil {
		return nil, fmt.Errorf("creating solver probe: %w", err)
	}
	workerGroup = append(workerGroup, probe)

	return workerGroup, nil
}

func buildSolver(cfg Config) (solver.Solver, error) {
	if cfg.MockMode {
		slog.Warn("running in MOCK MODE, no LLM API calls will be made")
		return solver.NewMockSolver(), nil
	}

	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY is required unless MOCK_MODE=true")
		}
		slog.Info("using gemini model", "model", cfg.GeminiModelName)
		return gemini.NewClient(gemini.Config{
			APIKey:          cfg.GoogleAPIKey,
			Model:           cfg.GeminiModelName,
			Temperature:     cfg.GeminiTemperature,
			MaxOutputTokens: cfg.GeminiMaxOutputTokens,
		})
	case "openai":
		slog.Info("using openai model", "model", cfg.OpenAIModel)
		return openai.NewClient(openai.Config{
			Token: cfg.OpenAIToken,
			Model: cfg.OpenAIModel,
		})
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
