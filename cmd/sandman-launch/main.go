// Command sandman-launch clears the terminal and runs the compiled-in
// mtime-shifting invocation, exiting with the program's status.
package main

import (
	"context"
	"os"

	"github.com/harrison/sandman/internal/launcher"
)

func main() {
	ctx, stop := launcher.SignalContext(context.Background())
	status := launcher.NewLauncher().Run(ctx)
	stop()

	os.Exit(status)
}
