package main

import (
	"context"
	"os"

	"github.com/preston-bernstein/schedule-builder/internal/cli"
)

var appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	if err := cli.Execute(context.Background(), appVersion); err != nil {
		os.Exit(1)
	}
}
