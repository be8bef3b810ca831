package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/genui/internal/tui"
)

var (
	chatLogFile string
	chatHealth  time.Duration
	chatTimeout time.Duration
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive image chat",
	Long:  "Launch the terminal interface: type prompts, then tweak the returned controls and regenerate.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var w io.Writer = io.Discard
		if chatLogFile != "" {
			f, err := os.OpenFile(chatLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			w = f
		}

		s, _ := newSession(w)
		defer s.Close()
		return tui.Run(cmd.Context(), s, tui.Options{
			OutDir:         outDir,
			HealthInterval: chatHealth,
			Timeout:        chatTimeout,
		})
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatLogFile, "log-file", "", "write logs to this file (the screen is used by the interface)")
	chatCmd.Flags().DurationVar(&chatHealth, "health-interval", 10*time.Second, "agent liveness check period")
	chatCmd.Flags().DurationVar(&chatTimeout, "timeout", 3*time.Minute, "timeout per exchange")
	rootCmd.AddCommand(chatCmd)
}
