package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/spetersoncode/genui/internal/tui"
	"github.com/spetersoncode/genui/render"
	"github.com/spetersoncode/genui/session"
)

var (
	sendSets    []string
	sendTimeout time.Duration
	sendWidth   int
)

var sendCmd = &cobra.Command{
	Use:   "send <prompt>",
	Short: "Send one prompt and print the reply",
	Long: `Send one prompt, print the reply text and the rendered controls, and save
any images with --out. Each --set id=value is applied to the returned
controls, after which the prompt is sent again with the new values.`,
	Example: `  imagine send "a lighthouse at dusk" -o images
  imagine send "a red fox" --set size=1024 --set style=cartoon`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringArrayVar(&sendSets, "set", nil, "widget value applied before refining (id=value, repeatable)")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout", 3*time.Minute, "timeout per exchange")
	sendCmd.Flags().IntVar(&sendWidth, "width", 80, "wrap width of the rendered controls")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	s, _ := newSession(os.Stderr)
	defer s.Close()

	ctx, cancel := contextWithTimeout(cmd, sendTimeout)
	defer cancel()

	reply, err := s.Send(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	if len(sendSets) > 0 {
		for _, set := range sendSets {
			id, raw, ok := strings.Cut(set, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q: want id=value", set)
			}
			if err := s.Input(id, parseValue(raw)); err != nil {
				return fmt.Errorf("set %s: %w", id, err)
			}
		}
		ctx, cancel := contextWithTimeout(cmd, sendTimeout)
		defer cancel()
		if reply, err = s.Refine(ctx); err != nil {
			return fmt.Errorf("refine: %w", err)
		}
	}

	return printReply(cmd, s, reply)
}

func printReply(cmd *cobra.Command, s *session.Session, reply *session.Reply) error {
	out := cmd.OutOrStdout()
	if reply.Text != "" {
		fmt.Fprintln(out, reply.Text)
	}

	paths, err := tui.SaveImages(outDir, reply.Images)
	if err != nil {
		return err
	}
	for i, img := range reply.Images {
		line := fmt.Sprintf("image %d: %s, %s", i+1, img.MIMEType, humanize.Bytes(uint64(len(img.Data))))
		if i < len(paths) {
			line += " -> " + paths[i]
		}
		fmt.Fprintln(out, line)
	}

	if view := s.View(render.ViewOptions{Width: sendWidth}); view != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, view)
	}
	return nil
}

// parseValue interprets a --set value as a number or bool when it parses as
// one.
func parseValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
