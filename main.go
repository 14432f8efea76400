// Command matchgame starts the match-3 game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, config directory, score history file, seeding,
// debug logging, and optional ngrok tunneling for external access during
// development. Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/matchgame/api"
	"github.com/wricardo/mcp-training/matchgame/game/config"
	"github.com/wricardo/mcp-training/matchgame/game/scores"
	"github.com/wricardo/mcp-training/matchgame/game/service"
	"github.com/wricardo/mcp-training/matchgame/game/session"
	"github.com/wricardo/mcp-training/matchgame/transport/mcp"
	"github.com/wricardo/mcp-training/matchgame/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Match-3 Game Server"
)

// options holds the parsed command line configuration
type options struct {
	Port        int
	Host        string
	ConfigDir   string
	ScoresFile  string
	Seed        uint64
	Debug       bool
	Ngrok       bool
	NgrokAuth   string
	NgrokDomain string
}

func (o options) addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "matchgame",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host", Sources: cli.EnvVars("HOST")},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing difficulty configurations", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "scores-file", Value: "scores/history.json", Usage: "Score history file (empty keeps scores in memory)", Sources: cli.EnvVars("SCORES_FILE")},
			&cli.Uint64Flag{Name: "seed", Usage: "Seed for deterministic boards (0 seeds from the clock)", Sources: cli.EnvVars("SEED")},
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging", Sources: cli.EnvVars("DEBUG")},
			&cli.BoolFlag{Name: "ngrok", Usage: "Enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "Ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "Custom ngrok domain (optional)", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		DefaultCommand: "server",
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts := optionsFrom(cmd)
					gameService, err := startServices(ctx, opts)
					if err != nil {
						return err
					}
					return runHTTPServer(ctx, gameService, opts)
				},
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					opts := optionsFrom(cmd)
					gameService, err := startServices(ctx, opts)
					if err != nil {
						return err
					}
					return runStdioMCPWithInternalServer(ctx, gameService, opts)
				},
			},
		},
	}
}

func optionsFrom(cmd *cli.Command) options {
	return options{
		Port:        cmd.Int("port"),
		Host:        cmd.String("host"),
		ConfigDir:   cmd.String("config-dir"),
		ScoresFile:  cmd.String("scores-file"),
		Seed:        cmd.Uint64("seed"),
		Debug:       cmd.Bool("debug"),
		Ngrok:       cmd.Bool("ngrok"),
		NgrokAuth:   cmd.String("ngrok-auth"),
		NgrokDomain: cmd.String("ngrok-domain"),
	}
}

// setupLogging writes human-readable logs to stderr; stdout stays free for MCP stdio
func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func main() {
	setupLogging(false)

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("error loading .env file")
		}
	} else {
		log.Info().Msg("loaded environment variables from .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// startServices configures logging, builds the game service and starts
// session cleanup for the lifetime of ctx
func startServices(ctx context.Context, opts options) (service.GameService, error) {
	setupLogging(opts.Debug)
	log.Info().Str("version", Version).Str("config_dir", opts.ConfigDir).Msgf("starting %s", AppName)

	gameService, sessions, err := initializeServices(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	sessions.StartCleanup(ctx, session.DefaultCleanupInterval, session.DefaultMaxIdle)
	return gameService, nil
}

// initializeServices wires the config manager, session manager, score store
// and game service
func initializeServices(opts options) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	var scoreStore service.ScoreRecorder
	if opts.ScoresFile != "" {
		fileStore, err := scores.NewFileStore(opts.ScoresFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open score history: %w", err)
		}
		scoreStore = fileStore
	}

	sessionOpts := []session.Option{session.WithLogger(log.Logger)}
	if opts.Seed != 0 {
		sessionOpts = append(sessionOpts, session.WithSeed(opts.Seed))
	}
	sessionManager := session.NewManager(sessionOpts...)

	return service.NewGameService(sessionManager, configManager, scoreStore), sessionManager, nil
}

// newRouter mounts the API server and the /mcp HTTP endpoint
func newRouter(apiServer *api.Server, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp proxy endpoint, plus an ngrok tunnel when enabled. It returns once ctx
// is cancelled and the servers have shut down.
func runHTTPServer(ctx context.Context, gameService service.GameService, opts options) error {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := opts.addr()
	apiServer := api.NewServer(gameService, hub)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))
	handler := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Msgf("HTTP server listening on %s", addr)
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws?sessionId=<session_id>", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if opts.Ngrok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler, opts)
		}()
	}

	<-ctx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")

	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts options) {
	if opts.NgrokAuth == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	log.Info().Msg("starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.NgrokDomain))
		log.Info().Str("domain", opts.NgrokDomain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.NgrokAuth))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().Msgf("ngrok tunnel established: %s", ngrokURL)
	log.Info().Msgf("  REST API (ngrok): %s/api", ngrokURL)
	log.Info().Msgf("  WebSocket (ngrok): %s/ws?sessionId=<session_id>", ngrokURL)
	log.Info().Msgf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Warn().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// externalAPIAvailable reports whether an API server already answers at baseURL
func externalAPIAvailable(baseURL string) bool {
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCPWithInternalServer runs an MCP stdio server. It reuses an API
// server already listening on the configured address; if there is none it
// starts an internal one on a random loopback port.
func runStdioMCPWithInternalServer(ctx context.Context, gameService service.GameService, opts options) error {
	externalURL := fmt.Sprintf("http://%s", opts.addr())
	log.Info().Msgf("checking for external API server at %s...", externalURL)

	baseURL := externalURL
	if externalAPIAvailable(externalURL) {
		log.Info().Msgf("external API server found at %s, using it for MCP", externalURL)
	} else {
		log.Info().Msg("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		log.Info().Msgf("internal HTTP server on %s for MCP stdio", internalAddr)
		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
