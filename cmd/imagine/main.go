// Command imagine is the terminal client for the image generation agent.
//
// Usage:
//
//	imagine send "a lighthouse at dusk" -o images
//	imagine chat --agent http://localhost:10002
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spetersoncode/genui/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
