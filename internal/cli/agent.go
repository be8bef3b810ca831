package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Show the agent card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _ := newSession(os.Stderr)
		defer s.Close()

		ctx, cancel := contextWithTimeout(cmd, 10*time.Second)
		defer cancel()
		card, err := s.Client().AgentCard(ctx)
		if err != nil {
			return fmt.Errorf("fetch agent card: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s (protocol %s)\n", card.Name, card.Version, card.ProtocolVersion)
		if card.Description != "" {
			fmt.Fprintln(out, card.Description)
		}
		fmt.Fprintf(out, "URL: %s\nStreaming: %t\n", card.URL, card.Capabilities.Streaming)
		for _, ext := range card.Capabilities.Extensions {
			fmt.Fprintf(out, "Extension: %s\n", ext.URI)
		}
		for _, skill := range card.Skills {
			fmt.Fprintf(out, "Skill %s: %s [%s]\n", skill.ID, skill.Name, strings.Join(skill.Tags, ", "))
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the agent is up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _ := newSession(os.Stderr)
		defer s.Close()

		ctx, cancel := contextWithTimeout(cmd, 5*time.Second)
		defer cancel()
		start := time.Now()
		if err := s.Client().Health(ctx); err != nil {
			return fmt.Errorf("agent unhealthy: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok (%s)\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd, healthCmd)
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
