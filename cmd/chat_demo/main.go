// README: Terminal chat against the real oracle and search service with in-memory session state.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"flightdesk/internal/ai"
	"flightdesk/internal/app"
	"flightdesk/internal/config"
	"flightdesk/internal/infra"
	"flightdesk/internal/modules/session"
	"flightdesk/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := infra.NewLogger(false)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model, cfg.AI.OracleTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	comp, err := app.Build(cfg, provider, app.Backends{
		Store:  session.NewMemoryStore(),
		Locker: session.NewMemoryLocker(),
	}, logger, nil)
	if err != nil {
		log.Fatalf("wire services: %v", err)
	}

	id := types.NewSessionID()
	fmt.Printf("session %s. Commands: /new starts over, /quit exits.\n", id)

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "/quit":
			_ = comp.Router.EndSession(ctx, id)
			return
		case "/new":
			reply, err := comp.Router.StartNewBooking(ctx, id)
			if err != nil {
				fmt.Printf("reset failed: %v\n", err)
				continue
			}
			fmt.Printf("Agent: %s\n", reply.Response)
			continue
		}

		reply := comp.Router.Route(ctx, id, line)
		fmt.Printf("Agent [%s]: %s\n", reply.Intent, reply.Response)
		if len(reply.Suggestions) > 0 {
			fmt.Printf("  next: %s\n", strings.Join(reply.Suggestions, " | "))
		}
		if ctx.Err() != nil {
			return
		}
	}
}
