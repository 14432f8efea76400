// Command bot plays match-3 sessions against a running game server through
// the REST API. It asks the server for hints and plays one per click until
// the budget runs out, then resets and starts the next game.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"golang.org/x/exp/rand"
)

// Client talks to one session on the game server
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sessionResponse struct {
	ID      string              `json:"id"`
	Summary engine.StateSummary `json:"summary"`
}

type hintsResponse struct {
	Swaps []engine.Swap `json:"swaps"`
	Total int           `json:"total"`
}

// SwapResponse is the subset of a swap result the bot reads
type SwapResponse struct {
	NullMove   bool                `json:"null_move"`
	ChainDepth int                 `json:"chain_depth"`
	ScoreDelta float64             `json:"score_delta"`
	Special    engine.SpecialKind  `json:"special,omitempty"`
	GameOver   bool                `json:"game_over"`
	Summary    engine.StateSummary `json:"summary"`
}

// do sends a JSON request and decodes a JSON response. Non-2xx responses
// become errors carrying the server's error message.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *Client) sessionPath(suffix string) string {
	return fmt.Sprintf("/api/sessions/%s%s", c.sessionID, suffix)
}

func (c *Client) CreateSession(ctx context.Context, configID string) (engine.StateSummary, error) {
	var body interface{}
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}

	var session sessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return engine.StateSummary{}, fmt.Errorf("create session: %w", err)
	}
	c.sessionID = session.ID
	return session.Summary, nil
}

// Resume attaches the client to an existing session
func (c *Client) Resume(ctx context.Context, sessionID string) (engine.StateSummary, error) {
	c.sessionID = sessionID
	var session sessionResponse
	if err := c.do(ctx, http.MethodGet, c.sessionPath(""), nil, &session); err != nil {
		return engine.StateSummary{}, fmt.Errorf("resume session: %w", err)
	}
	return session.Summary, nil
}

func (c *Client) Hints(ctx context.Context) ([]engine.Swap, error) {
	var hints hintsResponse
	if err := c.do(ctx, http.MethodGet, c.sessionPath("/hints"), nil, &hints); err != nil {
		return nil, err
	}
	return hints.Swaps, nil
}

func (c *Client) Swap(ctx context.Context, s engine.Swap) (*SwapResponse, error) {
	body := map[string]interface{}{"from": s.From, "to": s.To}
	var result SwapResponse
	if err := c.do(ctx, http.MethodPost, c.sessionPath("/swap"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.sessionPath("/reset"), nil, nil)
}

// Bot picks hints for a client
type Bot struct {
	client *Client
	rng    *rand.Rand
	delay  time.Duration
}

// GameResult summarises one finished game
type GameResult struct {
	Score    int
	MaxChain int
	Swaps    int
	Specials int
	Stuck    bool
}

// PlayGame swaps until the game is over. A nil rng always plays the first hint.
func (b *Bot) PlayGame(ctx context.Context) (GameResult, error) {
	var res GameResult
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		hints, err := b.client.Hints(ctx)
		if err != nil {
			return res, fmt.Errorf("get hints: %w", err)
		}
		if len(hints) == 0 {
			res.Stuck = true
			return res, nil
		}

		pick := hints[0]
		if b.rng != nil {
			pick = hints[b.rng.Intn(len(hints))]
		}

		out, err := b.client.Swap(ctx, pick)
		if err != nil {
			return res, fmt.Errorf("swap: %w", err)
		}
		res.Swaps++
		if out.Special != "" {
			res.Specials++
		}
		res.Score = out.Summary.DisplayScore
		res.MaxChain = out.Summary.MaxChain

		log.Debug().
			Str("swap", fmt.Sprintf("(%d,%d)<->(%d,%d)", pick.From.Row, pick.From.Col, pick.To.Row, pick.To.Col)).
			Int("chain", out.ChainDepth).
			Float64("delta", out.ScoreDelta).
			Int("clicks", out.Summary.ClicksRemaining).
			Msg("swapped")

		if out.GameOver {
			return res, nil
		}
		if b.delay > 0 {
			time.Sleep(b.delay)
		}
	}
}

// Play runs games back to back on one session, resetting between them
func (b *Bot) Play(ctx context.Context, games int) ([]GameResult, error) {
	results := make([]GameResult, 0, games)
	for i := 0; i < games; i++ {
		if i > 0 {
			if err := b.client.Reset(ctx); err != nil {
				return results, fmt.Errorf("reset: %w", err)
			}
		}

		res, err := b.PlayGame(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		event := log.Info().Int("game", i+1).Int("score", res.Score).Int("max_chain", res.MaxChain).Int("swaps", res.Swaps)
		if res.Stuck {
			event.Msg("⚠️  ran out of swaps")
		} else {
			event.Msg("🏁 game over")
		}
	}
	return results, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "bot",
		Usage: "Play match-3 games through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Game configuration ID (normal, hard, ...)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.IntFlag{Name: "games", Value: 1, Usage: "Games to play"},
			&cli.Uint64Flag{Name: "seed", Usage: "Pick random hints from this seed (0 plays the first hint)"},
			&cli.IntFlag{Name: "delay", Usage: "Delay between swaps in milliseconds"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("bot failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cmd.Bool("v") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	serverURL := cmd.String("url")
	log.Info().Msgf("connecting to game server at %s", serverURL)
	client := NewClient(serverURL)

	if id := cmd.String("continue"); id != "" {
		summary, err := client.Resume(ctx, id)
		if err != nil {
			return err
		}
		log.Info().Str("session", id).Int("score", summary.DisplayScore).Int("clicks", summary.ClicksRemaining).Msg("🔄 resumed session")
		if summary.IsGameOver {
			if err := client.Reset(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
		}
	} else {
		summary, err := client.CreateSession(ctx, cmd.String("config"))
		if err != nil {
			return err
		}
		log.Info().Str("session", client.sessionID).Int("clicks", summary.ClicksRemaining).Msg("✨ session created")
	}

	bot := &Bot{client: client, delay: time.Duration(cmd.Int("delay")) * time.Millisecond}
	if seed := cmd.Uint64("seed"); seed != 0 {
		bot.rng = rand.New(rand.NewSource(seed))
	}

	results, err := bot.Play(ctx, cmd.Int("games"))
	if err != nil {
		return err
	}

	best := 0
	for _, r := range results {
		if r.Score > best {
			best = r.Score
		}
	}
	fmt.Printf("Played %d game(s) on session %s, best score %d\n", len(results), client.sessionID, best)
	return nil
}
