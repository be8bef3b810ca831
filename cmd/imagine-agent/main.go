// Command imagine-agent serves the image generation agent over A2A
// JSON-RPC with the A2UI extension.
//
// Configuration is via environment variables (a .env file is loaded when
// present):
//
//	IMAGINE_HOST            - Listen host (default: localhost)
//	IMAGINE_PORT            - Listen port (default: 10002)
//	IMAGINE_PUBLIC_URL      - URL advertised in the agent card
//	IMAGINE_LOG_LEVEL       - debug, info, warn, error (default: info)
//	IMAGINE_LOG_FORMAT      - text or json (default: text)
//	IMAGINE_PROVIDER        - google, openai, or placeholder (default: first with a key)
//	IMAGINE_IMAGE_MODEL     - Image model override
//	IMAGINE_PLANNER         - keyword or llm (default: keyword)
//	IMAGINE_PLANNER_MODEL   - Anthropic model for the llm planner
//	IMAGINE_TIMEOUT         - Per-request timeout (default: 2m)
//	IMAGINE_RETRY_ATTEMPTS  - Image generation attempts (default: 3)
//	IMAGINE_VALIDATE        - Validate outgoing A2UI messages (default: true)
//	IMAGINE_LEGACY_WIDGETS  - Send legacy widget parts (default: false)
//	IMAGINE_STATE_TTL       - Conversation state lifetime (default: 1h)
//	GOOGLE_API_KEY          - Google API key (GEMINI_API_KEY also accepted)
//	OPENAI_API_KEY          - OpenAI API key
//	OPENAI_BASE_URL         - OpenAI-compatible endpoint
//	ANTHROPIC_API_KEY       - Anthropic API key for the llm planner
//
// Usage:
//
//	IMAGINE_PROVIDER=placeholder go run ./cmd/imagine-agent
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spetersoncode/genui"
	"github.com/spetersoncode/genui/a2a"
	"github.com/spetersoncode/genui/a2ui"
	"github.com/spetersoncode/genui/backend"
	"github.com/spetersoncode/genui/internal/logging"
	"github.com/spetersoncode/genui/provider/google"
	"github.com/spetersoncode/genui/provider/openai"
	"github.com/spetersoncode/genui/provider/placeholder"
	"github.com/spetersoncode/genui/retry"
	"github.com/spetersoncode/genui/store"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := createProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}

	states := store.NewMemoryAdapter(store.WithTTL(cfg.StateTTL))
	opts := []backend.Option{
		backend.WithLogger(logger),
		backend.WithStore(states),
		backend.WithRetry(retry.DefaultConfig().WithAttempts(cfg.RetryAttempts)),
		backend.WithTimeout(cfg.Timeout),
		backend.WithLegacyWidgets(cfg.LegacyWidgets),
	}
	if cfg.Planner == "llm" {
		opts = append(opts, backend.WithPlanner(backend.NewLLMPlanner(cfg.AnthropicKey,
			backend.WithPlannerModel(cfg.PlannerModel),
		)))
	}
	if cfg.ValidateUI {
		v, err := a2ui.NewValidator()
		if err != nil {
			return fmt.Errorf("load A2UI schema: %w", err)
		}
		opts = append(opts, backend.WithValidation(v))
	}

	agent, err := backend.New(provider, opts...)
	if err != nil {
		return err
	}

	handler := a2a.NewHandler(agent,
		a2a.WithAgentCard(backend.Card(cfg.PublicURL)),
		a2a.WithHandlerLogger(logger),
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      corsMiddleware(handler.Mux()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("A2A agent server starting",
			"addr", server.Addr,
			"provider", cfg.Provider,
			"planner", cfg.Planner,
			"validate", cfg.ValidateUI,
			"card", strings.TrimRight(cfg.PublicURL, "/")+a2a.AgentCardPath,
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sweepStates(ctx, states, cfg.StateTTL, logger)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func createProvider(ctx context.Context, cfg *Config) (genui.ImageProvider, error) {
	switch cfg.Provider {
	case "google":
		client, err := google.New(ctx, cfg.GoogleKey, google.WithModel(cfg.ImageModel))
		if err != nil {
			return nil, err
		}
		return client, nil
	case "openai":
		opts := []openai.ClientOption{openai.WithModel(cfg.ImageModel)}
		if cfg.OpenAIURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIURL))
		}
		return openai.New(cfg.OpenAIKey, opts...), nil
	case "placeholder":
		return placeholder.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// sweepStates drops expired conversation states until ctx is done.
func sweepStates(ctx context.Context, states *store.MemoryAdapter, ttl time.Duration, logger *slog.Logger) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(max(ttl/2, time.Minute))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := states.Sweep(); n > 0 {
				logger.Debug("expired conversation states", "count", n)
			}
		}
	}
}

// corsMiddleware adds CORS headers for browser clients.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+a2a.ExtensionsHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
