// ABOUTME: Entry point for the score-headlines binary.
// ABOUTME: Executes the root Cobra command and maps any failure to exit status 1.
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/2389-research/score-headlines/internal/models"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	app := &cli{stdout: stdout, stderr: stderr}
	cmd := app.rootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		// The usage line has already been printed.
		if !errors.Is(err, models.ErrUsage) {
			app.logger().Error("score-headlines failed", "err", err)
		}
		return 1
	}
	return 0
}
