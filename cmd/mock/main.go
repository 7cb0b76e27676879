package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"time"

	"github.com/tzuratlink/pagelink/pkg/otel"
	"github.com/tzuratlink/pagelink/server"
	"github.com/tzuratlink/pagelink/server/pipeline"
)

func main() {
	addressFlag := flag.String("address", ":8080", "listen address")
	delayFlag := flag.Duration("delay", 300*time.Millisecond, "delay between stage events")

	flag.Parse()

	ctx := context.Background()

	if err := otel.Setup(ctx, "pagelink-mock", "dev"); err != nil {
		panic(err)
	}

	handler := pipeline.New(pipeline.WithDelay(*delayFlag))

	slog.Info("pipeline stub listening", "address", *addressFlag)

	if err := http.ListenAndServe(*addressFlag, server.Handler(handler)); err != nil {
		panic(err)
	}
}
