// cmd/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Panorama-Block/near-versions/internal/app"
	"github.com/Panorama-Block/near-versions/internal/config"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(args []string, stdout io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintf(stdout, "usage: %s <node_addr:port>\n", filepath.Base(args[0]))
		return 1
	}

	cfg := config.LoadConfig()
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApp(cfg, args[1])
	a.SetOutput(stdout)
	a.SetupPublisher()
	defer a.Close()

	if _, err := a.Run(ctx); err != nil {
		logrus.Errorf("Version report failed: %v", err)
		return 1
	}
	return 0
}

func setupLogging(level string) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
