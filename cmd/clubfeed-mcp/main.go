package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// club mirrors the clubfeed API record.
type club struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
}

// errorResponse mirrors the clubfeed API error envelope.
type errorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("CLUBFEED_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}

	s := server.NewMCPServer(
		"clubfeed",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	listClubsTool := mcp.NewTool("list_clubs",
		mcp.WithDescription("List the student clubs currently published in the university club directory, with description, website and logo. Results come from a cache that is refreshed at most once an hour."),
		mcp.WithString("search",
			mcp.Description("Optional case-insensitive text to match against club names and descriptions"),
		),
	)
	s.AddTool(listClubsTool, handleListClubs(apiURL))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// fetchClubs calls GET /api/v1/clubs and decodes the result.
func fetchClubs(ctx context.Context, client *http.Client, apiURL string) ([]club, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/api/v1/clubs", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != nil {
			return nil, fmt.Errorf("[%s] %s", e.Error.Code, e.Error.Message)
		}
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var clubs []club
	if err := json.Unmarshal(body, &clubs); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return clubs, nil
}

// filterClubs keeps clubs whose name or description contains search.
func filterClubs(clubs []club, search string) []club {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return clubs
	}
	var out []club
	for _, c := range clubs {
		if strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.Description), search) {
			out = append(out, c)
		}
	}
	return out
}

// formatClubs renders clubs as a plain-text list for the model.
func formatClubs(clubs []club) string {
	if len(clubs) == 0 {
		return "No clubs found."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d clubs\n", len(clubs))
	for i, c := range clubs {
		fmt.Fprintf(&sb, "\n## %d. %s\n%s\n", i+1, c.Name, c.Description)
		if c.URL != "" {
			fmt.Fprintf(&sb, "Website: %s\n", c.URL)
		}
		if c.Image != "" {
			fmt.Fprintf(&sb, "Logo: %s\n", c.Image)
		}
	}
	return sb.String()
}

func handleListClubs(apiURL string) server.ToolHandlerFunc {
	// A cold cache renders the directory before answering.
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clubs, err := fetchClubs(ctx, client, apiURL)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		clubs = filterClubs(clubs, request.GetString("search", ""))
		return mcp.NewToolResultText(formatClubs(clubs)), nil
	}
}
