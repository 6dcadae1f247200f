package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/doeshing/texturepro/internal/infrastructure/cli"
)

func main() {
	// A missing .env is normal; keys usually come from the shell.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(ctx, cli.Options{Verbose: isVerbose()})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func isVerbose() bool {
	value := os.Getenv("TEXTUREPRO_DEBUG")
	return value == "1" || strings.EqualFold(value, "true")
}
