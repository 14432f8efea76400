package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/matchgame/game/engine"
	"github.com/wricardo/mcp-training/matchgame/game/scores"
	"github.com/wricardo/mcp-training/matchgame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Match-3 Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Match-3 Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Score as many points as possible before the click budget runs out. Swap two
adjacent tiles to line up three or more of one color.

AVAILABLE TOOLS:
- create_session: Create a new game session (optionally with a config)
- list_sessions / get_session: Inspect sessions
- game_state: Board, score and clicks remaining
- swap: Swap two adjacent cells - requires intent explanation
- bulk_swap: Several swaps in order - requires intent explanation
- hints: Swaps that would resolve on the current board
- reset_game: Deal a new board
- swap_history: View past swaps
- score_history: The 10 most recent finished games
- list_configs: Available difficulty configurations
- game_instructions: Full rules and scoring
- describe_cell: What sits at one cell

Coordinates are 0-based (row, col); row 0 is the top row.
NOTE: The 'intent' parameter on swap tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use, e.g. normal, hard, normal_sealed (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, score and clicks remaining",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "swap",
		Description: "Swap two adjacent tiles. A swap of two plain tiles that forms no match is undone and costs no click.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"from_row":   intProperty("Row of the first tile (0-based)"),
				"from_col":   intProperty("Column of the first tile (0-based)"),
				"to_row":     intProperty("Row of the second tile (0-based)"),
				"to_col":     intProperty("Column of the second tile (0-based)"),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this swap (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before swapping",
				},
			},
			Required: []string{"session_id", "from_row", "from_col", "to_row", "to_col"},
		},
	}, c.handleSwap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_swap",
		Description: fmt.Sprintf("Execute up to %d swaps in sequence, stopping at the first rejected swap or game over", service.MaxBulkSwaps),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"swaps": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "array",
						"items":    map[string]interface{}{"type": "integer"},
						"minItems": 4,
						"maxItems": 4,
					},
					"description": "Swaps as [from_row, from_col, to_row, to_col]",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of swaps (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before swapping",
				},
			},
			Required: []string{"session_id", "swaps"},
		},
	}, c.handleBulkSwap)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hints",
		Description: "List swaps that would form a match or trigger a special tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"limit":      intProperty("Maximum number of hints (default all)"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleHints)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Deal a new board and restore the click budget",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "swap_history",
		Description: "Get swap history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page":       intProperty("Page number"),
				"limit":      intProperty("Items per page"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleSwapHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "score_history",
		Description: "List the most recent finished games, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleScoreHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get the tile at one cell. Useful for telling specials (* bomb, @ rainbow, # sealed) apart from colors.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"row":        intProperty("Row of the cell (0-based)"),
				"col":        intProperty("Column of the cell (0-based)"),
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "playing"
		if s.Summary.IsGameOver {
			status = "game over"
		}
		fmt.Fprintf(&sb, "- %s (Config: %s, Score: %d, Clicks: %d, %s, Created: %s)\n",
			s.ID, s.ConfigName, s.Summary.DisplayScore, s.Summary.ClicksRemaining, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

type stateResponse struct {
	Summary engine.StateSummary `json:"summary"`
	State   *engine.GameState   `json:"state"`
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response stateResponse
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(response.State)), nil
}

func (c *Client) handleSwap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	var coords [4]int
	for i, key := range []string{"from_row", "from_col", "to_row", "to_col"} {
		v, ok := intArg(args, key)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%s is required and must be an integer", key)), nil
		}
		coords[i] = v
	}

	body := map[string]interface{}{
		"from":  engine.Position{Row: coords[0], Col: coords[1]},
		"to":    engine.Position{Row: coords[2], Col: coords[3]},
		"reset": reset,
	}

	var result service.SwapResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/swap"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSwapResult(&result)), nil
}

// parseSwaps reads [[from_row, from_col, to_row, to_col], ...]
func parseSwaps(raw []interface{}) ([]engine.Swap, error) {
	swaps := make([]engine.Swap, 0, len(raw))
	for i, item := range raw {
		quad, ok := item.([]interface{})
		if !ok || len(quad) != 4 {
			return nil, fmt.Errorf("swap %d must be [from_row, from_col, to_row, to_col]", i+1)
		}
		var n [4]int
		for j, v := range quad {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("swap %d must contain integers", i+1)
			}
			n[j] = int(f)
		}
		swaps = append(swaps, engine.Swap{
			From: engine.Position{Row: n[0], Col: n[1]},
			To:   engine.Position{Row: n[2], Col: n[3]},
		})
	}
	return swaps, nil
}

func (c *Client) handleBulkSwap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	raw, _ := args["swaps"].([]interface{})
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	swaps, err := parseSwaps(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{
		"swaps": swaps,
		"reset": reset,
	}

	var result service.BulkSwapResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-swap"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkSwapResult(sessionID, &result)), nil
}

func (c *Client) handleHints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	path := sessionPath(sessionID, "/hints")
	if limit, ok := intArg(args, "limit"); ok && limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}

	var hints service.HintsResponse
	if err := c.apiCall(ctx, "GET", path, nil, &hints); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHints(&hints)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleSwapHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	query := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		query.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		query.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleScoreHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count  int            `json:"count"`
		Scores []scores.Entry `json:"scores"`
	}

	if err := c.apiCall(ctx, "GET", "/api/scores", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScores(response.Scores)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		sealed := ""
		if config.SealedMode {
			sealed = ", sealed tiles"
		}
		fmt.Fprintf(&sb, "• %s (%s)\n  %s\n  Board: %dx%d, Colors: %d, Clicks: %d, Difficulty: %s%s\n\n",
			config.ConfigID, config.Name, config.Description,
			config.BoardSize, config.BoardSize, config.PaletteSize, config.ClickBudget, config.Difficulty, sealed)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

const instructions = `Match-3 Game - Complete Instructions

GAME OBJECTIVE:
Score as many points as you can before your clicks run out (20 by default).

BOARD LEGEND:
• R B G Y O - red, blue, green, yellow, orange tiles (hard mode adds orange)
• * - Bomb: swap it with any neighbor to clear the 3x3 area around it
• @ - Rainbow: swap it with a colored tile to clear every tile of that color
• # - Sealed: never matches; it breaks when a neighbor is cleared
Coordinates are (row, col), 0-based, row 0 at the top. Gravity pulls tiles down.

SWAPPING:
• Swap two tiles that share an edge.
• A swap of two colored tiles that lines up nothing is undone and is free.
• Any swap that clears tiles costs one click.
• Swapping a bomb or rainbow always fires it, and costs one click.

SCORING:
• Each cleared tile is worth 1 point times the chain multiplier.
• Cleared tiles are refilled from the top; new runs extend the chain.
• Normal: multiplier is 1.0, 1.2, 1.4, ... (+0.2 per chain level).
• Hard: 1.0, 1.2, then +0.6 per level (1.8, 2.4, ...).
• Bomb+bomb, rainbow+rainbow or bomb+rainbow clears the whole board for +1000.

SPECIAL TILES:
• A swap whose first match clears 5+ tiles turns the swapped tile into a bomb.
• A 5+ clear deeper in a chain drops a bomb on a random tile once the chain ends.
• A chain of 5 or more levels drops a rainbow on the board.
• In sealed mode, two sealed tiles appear once each cascade settles.

STRATEGY:
• Use hints to list swaps that will resolve.
• Swaps low on the board shake more tiles and tend to chain deeper.
• Save bombs and rainbows for swaps next to each other: the combo is worth 1000.
• bulk_swap can play a planned sequence, but the board changes after each
  swap, so plan only one or two ahead unless you re-check hints.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- reset_game deals a new board with a fresh click budget; history is kept`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required integers"), nil
	}

	var response stateResponse
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if response.State == nil || response.State.Board == nil {
		return mcp.NewToolResultError("session has no board"), nil
	}

	board := response.State.Board
	pos := engine.Position{Row: row, Col: col}
	if !board.InBounds(pos) {
		return mcp.NewToolResultError(fmt.Sprintf("Cell (%d, %d) is out of bounds. Board is %dx%d (0-%d for row and col)",
			row, col, board.Size, board.Size, board.Size-1)), nil
	}

	tile := board.At(pos)
	return mcp.NewToolResultText(fmt.Sprintf("Cell (%d, %d): %c - %s",
		row, col, engine.TileChar(tile), describeTile(tile))), nil
}

func describeTile(t engine.Tile) string {
	switch t.Kind {
	case engine.Normal:
		return fmt.Sprintf("%s tile, matches with other %s tiles", t.Color, t.Color)
	case engine.Bomb:
		return "Bomb, swap it to clear the 3x3 area around it"
	case engine.Rainbow:
		return "Rainbow, swap it with a colored tile to clear every tile of that color"
	case engine.Sealed:
		return "Sealed, never matches and breaks when a neighbor is cleared"
	default:
		return "Empty"
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\nLast accessed: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339),
		formatGameState(session.GameState))
}

// formatBoard renders the board with row and column indices
func formatBoard(board *engine.Board) string {
	if board == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("    ")
	for c := 0; c < board.Size; c++ {
		fmt.Fprintf(&sb, "%-2d", c)
	}
	sb.WriteString("\n")
	for r, row := range board.Rows() {
		fmt.Fprintf(&sb, "%2d  ", r)
		for i := 0; i < len(row); i++ {
			sb.WriteByte(row[i])
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state"
	}
	summary := state.Summary()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d\n", summary.DisplayScore)
	fmt.Fprintf(&sb, "Clicks remaining: %d\n", summary.ClicksRemaining)
	if state.ConfigName != "" {
		fmt.Fprintf(&sb, "Config: %s (%s)\n", state.ConfigName, state.Difficulty)
	}
	if summary.MaxChain > 0 {
		fmt.Fprintf(&sb, "Best chain: %d\n", summary.MaxChain)
	}
	if summary.IsGameOver {
		fmt.Fprintf(&sb, "\n🏁 GAME OVER - final score %d\n", summary.DisplayScore)
	}
	sb.WriteString("\nBoard:\n")
	sb.WriteString(formatBoard(state.Board))
	return sb.String()
}

func formatSwapResult(result *service.SwapResult) string {
	var sb strings.Builder
	switch {
	case result.NullMove:
		sb.WriteString("↩ No match, swap reverted (no click used)\n")
	case result.Success:
		sb.WriteString("✓ Swap resolved\n")
	default:
		sb.WriteString("✗ Swap rejected\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&sb, "%s\n", result.Message)
	}
	if result.Success {
		fmt.Fprintf(&sb, "Chain depth: %d, points: +%d\n", result.ChainDepth, engine.DisplayScore(result.ScoreDelta))
	}
	if result.RecordedAs != nil {
		fmt.Fprintf(&sb, "Recorded in score history as %s\n", result.RecordedAs.ID)
	}
	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatBulkSwapResult(sessionID string, result *service.BulkSwapResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Session %s: executed %d/%d swaps", sessionID, result.SwapsExecuted, result.RequestedSwaps)
	if result.NullMoves > 0 {
		fmt.Fprintf(&sb, " (%d reverted)", result.NullMoves)
	}
	sb.WriteString("\n")
	if result.Truncated {
		fmt.Fprintf(&sb, "Only the first %d swaps were applied\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&sb, "Stopped on swap %d: %s\n", result.StoppedOnSwap, result.StoppedReason)
	}
	fmt.Fprintf(&sb, "Score: %d -> %d (+%d), best chain %d\n",
		engine.DisplayScore(result.StartScore), engine.DisplayScore(result.EndScore),
		engine.DisplayScore(result.ScoreDelta), result.MaxChain)

	for _, step := range result.Steps {
		status := "resolved"
		if !step.Accepted {
			status = "reverted"
		}
		fmt.Fprintf(&sb, "  %d. (%d,%d)<->(%d,%d) %s chain=%d +%d clicks=%d\n",
			step.Idx, step.From.Row, step.From.Col, step.To.Row, step.To.Col,
			status, step.ChainDepth, engine.DisplayScore(step.ScoreDelta), step.ClicksAfter)
	}

	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatHints(hints *service.HintsResponse) string {
	if len(hints.Swaps) == 0 {
		return "No resolving swaps available"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Resolving swaps (%d of %d):\n", len(hints.Swaps), hints.Total)
	for _, s := range hints.Swaps {
		fmt.Fprintf(&sb, "- (%d,%d)<->(%d,%d)\n", s.From.Row, s.From.Col, s.To.Row, s.To.Col)
	}
	return sb.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Swap History (Page %d/%d, Total: %d):\n\n", history.Page, history.TotalPages, history.TotalSwaps)
	for _, s := range history.Swaps {
		status := "✓"
		if !s.Accepted {
			status = "↩"
		}
		special := ""
		if s.Special != "" {
			special = " " + s.Special
		}
		fmt.Fprintf(&sb, "#%d %s (%d,%d)<->(%d,%d) chain=%d +%d clicks=%d%s\n",
			s.MoveNumber, status, s.From.Row, s.From.Col, s.To.Row, s.To.Col,
			s.ChainDepth, engine.DisplayScore(s.ScoreDelta), s.ClicksAfter, special)
	}
	if history.HasNext {
		sb.WriteString("\nMore swaps on the next page\n")
	}
	return sb.String()
}

func formatScores(entries []scores.Entry) string {
	if len(entries) == 0 {
		return "No finished games yet"
	}
	var sb strings.Builder
	sb.WriteString("Recent Scores:\n\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. %d points (%s, %s) best chain %d, %d swaps, session %s, %s\n",
			i+1, e.Score, e.ConfigName, e.Difficulty, e.MaxChain, e.Swaps, e.SessionID, e.RecordedAt.Format("2006-01-02 15:04"))
	}
	return sb.String()
}
