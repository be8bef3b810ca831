// Package cli implements the imagine command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spetersoncode/genui/internal/logging"
	"github.com/spetersoncode/genui/session"
)

// DefaultAgentURL is the agent endpoint used when neither --agent nor
// IMAGINE_AGENT_URL is set.
const DefaultAgentURL = "http://localhost:10002"

var (
	agentURL   string
	logLevel   string
	logFormat  string
	legacyMode bool
	accumulate bool
	outDir     string
)

var rootCmd = &cobra.Command{
	Use:   "imagine",
	Short: "Generate images with an A2UI agent",
	Long:  "imagine talks to an A2A image generation agent and renders the controls it sends back.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		godotenv.Load() // Load .env file if present
		if agentURL == "" {
			agentURL = os.Getenv("IMAGINE_AGENT_URL")
		}
		if agentURL == "" {
			agentURL = DefaultAgentURL
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&agentURL, "agent", "", "agent JSON-RPC endpoint (default $IMAGINE_AGENT_URL or "+DefaultAgentURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&legacyMode, "legacy", false, "send widget values as legacy a2ui parts")
	rootCmd.PersistentFlags().BoolVar(&accumulate, "accumulate", false, "keep surfaces from earlier replies")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "directory to save generated images into")
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newSession opens a session against the configured agent, logging to w.
func newSession(w io.Writer) (*session.Session, *slog.Logger) {
	logger := logging.New(w, logLevel, logFormat)
	s := session.New(agentURL,
		session.WithLogger(logger),
		session.WithLegacyWidgets(legacyMode),
		session.WithAccumulate(accumulate),
	)
	return s, logger
}
