package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bjarke-xyz/app-tracker/internal/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cmd.ServerCmd(ctx)
	if err != nil {
		log.Fatal(err)
	}
}
