package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/finassist/policy-agent/internal/setup"
	"github.com/finassist/policy-agent/internal/setup/logger"
)

// Terminal chat client running the same pipeline as the API, useful for
// trying profiles without standing up the server.
func main() {
	profile := flag.String("profile", "external", "Enforcement profile")
	stream := flag.Bool("stream", true, "Stream answer increments")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.FromEnv()
	log.Logger = logger.New(cfg.LogLevel)

	ctx := context.Background()
	app, err := setup.Wire(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire application")
	}
	defer app.Close()

	if _, err := app.Registry.Get(*profile); err != nil {
		log.Fatal().Str("profile", *profile).Msg("Unknown profile")
	}

	fmt.Printf("Policy assistant (profile: %s). Type 'exit' to quit.\n", *profile)

	scanner := bufio.NewScanner(os.Stdin)
	sessionID := ""

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		if *stream {
			result, err := app.Coordinator.RouteStream(ctx, query, *profile, sessionID,
				func(chunk string) error {
					fmt.Print(chunk)
					return nil
				})
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			sessionID = result.SessionID
			if result.Blocked && result.Specialist == "" {
				fmt.Print(result.Response)
			}
			fmt.Println()
		} else {
			result, err := app.Coordinator.Route(ctx, query, *profile, sessionID)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			sessionID = result.SessionID
			fmt.Println(result.Response)
		}
	}
}
