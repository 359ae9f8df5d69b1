package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/ports"

	"golang.org/x/sync/errgroup"
)

// statAliases renames the stats API's camelCase fields to the canonical
// category keys the league configuration speaks. Unknown numeric fields
// pass through under their own name.
var statAliases = map[string]string{
	"goals":        "G",
	"assists":      "A",
	"ppPoints":     "PPP",
	"shots":        "SOG",
	"shPoints":     "SHP",
	"hits":         "HITS",
	"blockedShots": "BLKS",
	"faceoffsWon":  "FW",
}

// Client fetches skater season stats from the live API and adapts them
// to the canonical table. It owns the only caching in the system: a
// time-boxed reuse of the last fetch, so a reactive caller can hit
// FetchTable on every interaction without hammering the API.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	ttl       time.Duration

	mu        sync.Mutex
	cached    *player.StatTable
	fetchedAt time.Time
}

var _ ports.TableSource = (*Client)(nil)

// NewClient creates a stats API client
func NewClient(baseURL string, timeout, ttl time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: "puckval/1.0",
		ttl:       ttl,
	}
}

// FetchTable returns the canonical skater table, reusing the cached
// copy while it is fresh. Skater stats and roster flags are fetched
// concurrently and joined by player id.
func (c *Client) FetchTable(ctx context.Context) (*player.StatTable, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		table := c.cached
		c.mu.Unlock()
		return table, nil
	}
	c.mu.Unlock()

	var (
		skaters  []skaterRow
		rostered map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skaters, err = c.fetchSkaters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rostered, err = c.fetchRosterFlags(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := buildTable(skaters, rostered)
	if table.IsEmpty() {
		return nil, core.ErrNoData
	}

	c.mu.Lock()
	c.cached = table
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	log.Printf("[NHLClient] fetched %d skaters (rostered flags: %v)", table.Len(), rostered != nil)
	return table, nil
}

// Invalidate drops the cached table so the next fetch goes to the API.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

type skaterRow map[string]json.RawMessage

type skatersPayload struct {
	Data []skaterRow `json:"data"`
}

type rosterPayload struct {
	Rostered []string `json:"rostered"`
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

func (c *Client) fetchSkaters(ctx context.Context) ([]skaterRow, error) {
	resp, err := c.get(ctx, "/skaters")
	if err != nil {
		return nil, fmt.Errorf("fetch skaters: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET /skaters failed: %d body=%s", resp.StatusCode, string(body))
	}

	var payload skatersPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode skaters payload: %w", err)
	}
	return payload.Data, nil
}

// fetchRosterFlags loads the set of rostered player ids. A 404 means
// the deployment has no roster feed; that is not an error, the flags
// simply stay unpopulated and the unrostered pool policy is unusable.
func (c *Client) fetchRosterFlags(ctx context.Context) (map[string]bool, error) {
	resp, err := c.get(ctx, "/rosters")
	if err != nil {
		return nil, fmt.Errorf("fetch rosters: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET /rosters failed: %d body=%s", resp.StatusCode, string(body))
	}

	var payload rosterPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode roster payload: %w", err)
	}
	flags := make(map[string]bool, len(payload.Rostered))
	for _, id := range payload.Rostered {
		flags[id] = true
	}
	return flags, nil
}

// buildTable adapts raw API rows to canonical records. Identifying
// fields come from the API's fixed names; every other numeric field
// becomes a category, renamed through statAliases where known.
func buildTable(rows []skaterRow, rostered map[string]bool) *player.StatTable {
	records := make([]player.Record, 0, len(rows))
	for _, row := range rows {
		id := stringField(row, "playerId")
		if id == "" {
			continue
		}
		rec := player.Record{
			ID:       core.PlayerID(id),
			Name:     stringField(row, "skaterFullName"),
			Position: mapPosition(stringField(row, "positionCode")),
			Stats:    make(map[string]float64),
		}
		if v, ok := numberField(row, "timeOnIcePerGame"); ok {
			rec.Usage = v
		}
		for key, raw := range row {
			switch key {
			case "playerId", "skaterFullName", "positionCode", "timeOnIcePerGame":
				continue
			}
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				continue
			}
			if alias, ok := statAliases[key]; ok {
				key = alias
			}
			rec.Stats[key] = v
		}
		if rostered != nil {
			flag := rostered[id]
			rec.Rostered = &flag
		}
		records = append(records, rec)
	}
	return player.NewStatTable(records)
}

func stringField(row skaterRow, key string) string {
	raw, ok := row[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// Some feeds send numeric ids unquoted.
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func numberField(row skaterRow, key string) (float64, bool) {
	raw, ok := row[key]
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

func mapPosition(code string) player.Position {
	switch code {
	case "C", "L", "R", "LW", "RW", "F":
		return player.PositionForward
	case "D":
		return player.PositionDefense
	default:
		return player.PositionNone
	}
}
