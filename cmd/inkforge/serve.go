package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/inkforge/inkforge"
	httpAdapter "github.com/inkforge/inkforge/internal/adapters/http"
	"github.com/inkforge/inkforge/internal/logging"
	memoryAdapter "github.com/inkforge/inkforge/pkg/adapters/memory"
	redisAdapter "github.com/inkforge/inkforge/pkg/adapters/redis"
	"github.com/inkforge/inkforge/pkg/ports"
	"github.com/inkforge/inkforge/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Start the HTTP server",
	Long:  `Compiles the gamebook and exposes it over a JSON API with persistent play sessions.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		entry, _ := cmd.Flags().GetString("entry")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}

		game, err := inkforge.Parse(string(data))
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			os.Exit(1)
		}
		if err := inkforge.Validate(game, entry); err != nil {
			fmt.Printf("Invalid game: %v\n", err)
			os.Exit(1)
		}

		logger := logging.NewJSON(slog.LevelInfo)

		var store ports.StateStore
		managerOpts := []session.Option{session.WithLogger(logger)}
		if redisAddr != "" {
			redisStore := redisAdapter.New(redisAddr, redisPassword, redisDB,
				redisAdapter.WithTTL(sessionTTL))
			store = redisStore
			managerOpts = append(managerOpts,
				session.WithLocker(redisAdapter.NewLocker(redisStore.Client(), "inkforge:session:")))
			logger.Info("Using Redis session store", "addr", redisAddr)
		} else {
			store = memoryAdapter.NewStore()
			logger.Info("Using in-memory session store")
		}
		sessions := session.NewManager(store, managerOpts...)

		server := httpAdapter.NewServer(nil, sessions, httpAdapter.WithLogger(logger))
		engine := inkforge.NewEngine(game,
			inkforge.WithLogger(logger),
			inkforge.WithEntryScene(entry),
			inkforge.WithLifecycleHooks(server.Metrics().Hooks()),
		)
		server.SetEngine(engine)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: server.Handler(),
		}

		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting inkforge server", "addr", srv.Addr, "game", game.Title)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("Starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "err", err)
				}
			}
			logger.Info("Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session persistence (empty = in-memory)")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("session-ttl", 0, "Session expiration (0 = no expiration)")
}
