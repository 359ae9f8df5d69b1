package ui

import (
	"net/http"
	"strconv"
	"strings"

	"puckval/app"
	"puckval/domain/compare"
	"puckval/domain/core"
	"puckval/domain/player"
	"puckval/domain/scoring"
	"puckval/internal/errors"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePlayers(c *gin.Context) {
	table, err := s.service.CurrentTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type playerView struct {
		ID       core.PlayerID   `json:"id"`
		Name     string          `json:"name"`
		Position player.Position `json:"position"`
		Usage    float64         `json:"usage"`
	}
	views := make([]playerView, 0, table.Len())
	for _, r := range table.Rows {
		views = append(views, playerView{ID: r.ID, Name: r.Name, Position: r.Position, Usage: r.Usage})
	}
	c.JSON(http.StatusOK, gin.H{"players": views, "count": len(views)})
}

func (s *Server) handleCategories(c *gin.Context) {
	table, err := s.service.CurrentTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	active := player.NewCategorySet(s.league.Categories...).Intersect(table)
	c.JSON(http.StatusOK, gin.H{
		"active":    active,
		"available": table.Categories(),
	})
}

func (s *Server) handleScores(c *gin.Context) {
	cfg, err := s.scoringConfigFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	scores, table, err := s.service.Scores(c.Request.Context(), cfg)
	if err != nil {
		respondError(c, err)
		return
	}

	type scoreView struct {
		ID          core.PlayerID      `json:"id"`
		Name        string             `json:"name"`
		Position    player.Position    `json:"position"`
		Total       float64            `json:"total"`
		PerCategory map[string]float64 `json:"per_category"`
	}
	ranked := scores.Ranked()
	views := make([]scoreView, 0, len(ranked))
	for _, sc := range ranked {
		row, _ := table.ByID(sc.PlayerID)
		views = append(views, scoreView{
			ID:          sc.PlayerID,
			Name:        row.Name,
			Position:    sc.Position,
			Total:       sc.Total,
			PerCategory: sc.PerCategory,
		})
	}
	c.JSON(http.StatusOK, gin.H{"scores": views, "config": cfg})
}

// compareBody is the POST /api/compare payload. League defaults fill
// anything omitted.
type compareBody struct {
	SideA      []string `json:"side_a"`
	SideB      []string `json:"side_b"`
	Categories []string `json:"categories"`
	Mode       string   `json:"mode"`
	Policy     string   `json:"policy"`
	Missing    string   `json:"missing"`
	RankStat   string   `json:"rank_stat"`
	Teams      *int     `json:"teams"`
	Slots      *int     `json:"slots"`
	Buffer     *float64 `json:"buffer"`
	Percentile *float64 `json:"percentile"`
}

func (s *Server) handleCompare(c *gin.Context) {
	req, err := s.compareRequestFromBody(c)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.service.Compare(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.service.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	table, err := s.service.CurrentTable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": table.Len()})
}

func (s *Server) handleSaveSnapshot(c *gin.Context) {
	var body struct {
		Label string `json:"label"`
	}
	_ = c.ShouldBindJSON(&body)

	snapshot, err := s.service.SaveSnapshot(c.Request.Context(), body.Label)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       snapshot.ID,
		"label":    snapshot.Label,
		"taken_at": snapshot.TakenAt,
		"rows":     snapshot.Table.Len(),
	})
}

func (s *Server) handleLatestSnapshot(c *gin.Context) {
	snapshot, err := s.service.LoadLatestSnapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSnapshot(c, snapshot)
}

// handleLoadSnapshot restores a specific snapshot as the current table.
func (s *Server) handleLoadSnapshot(c *gin.Context) {
	snapshot, err := s.service.LoadSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSnapshot(c, snapshot)
}

func (s *Server) handleListSnapshots(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		respondError(c, err)
		return
	}
	infos, err := s.service.ListSnapshots(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": infos, "count": len(infos)})
}

func respondSnapshot(c *gin.Context, snapshot *player.Snapshot) {
	c.JSON(http.StatusOK, gin.H{
		"id":       snapshot.ID,
		"label":    snapshot.Label,
		"taken_at": snapshot.TakenAt,
		"rows":     snapshot.Table.Len(),
	})
}

// scoringConfigFromQuery assembles a scoring run from query parameters,
// falling back to the configured league defaults.
func (s *Server) scoringConfigFromQuery(c *gin.Context) (scoring.Config, error) {
	cfg := scoring.Config{
		Categories: player.NewCategorySet(s.league.Categories...),
		Policy: scoring.PoolPolicy{
			Kind:         scoring.PolicyTopUsage,
			Teams:        s.league.Teams,
			SlotsPerTeam: s.league.SlotsPerTeam,
			DepthBuffer:  s.league.DepthBuffer,
		},
		Missing:               scoring.MissingOmit,
		ReplacementPercentile: s.league.ReplacementPercentile,
	}

	if raw := c.Query("cats"); raw != "" {
		cfg.Categories = player.NewCategorySet(strings.Split(raw, ",")...)
	}
	if raw := c.Query("policy"); raw != "" {
		cfg.Policy.Kind = scoring.PolicyKind(raw)
	}
	if raw := c.Query("rank_stat"); raw != "" {
		cfg.Policy.RankStat = raw
	}
	if raw := c.Query("missing"); raw != "" {
		cfg.Missing = scoring.MissingValuePolicy(raw)
	}

	var err error
	if cfg.Policy.Teams, err = intQuery(c, "teams", cfg.Policy.Teams); err != nil {
		return cfg, err
	}
	if cfg.Policy.SlotsPerTeam, err = intQuery(c, "slots", cfg.Policy.SlotsPerTeam); err != nil {
		return cfg, err
	}
	if cfg.Policy.DepthBuffer, err = floatQuery(c, "buffer", cfg.Policy.DepthBuffer); err != nil {
		return cfg, err
	}
	if cfg.ReplacementPercentile, err = floatQuery(c, "percentile", cfg.ReplacementPercentile); err != nil {
		return cfg, err
	}
	if err := validateRosterMath(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validateRosterMath rejects roster inputs the pool selectors cannot
// size a pool from.
func validateRosterMath(cfg scoring.Config) error {
	if cfg.Policy.Teams <= 0 || cfg.Policy.SlotsPerTeam <= 0 {
		return errors.InvalidInput("teams and slots must be positive")
	}
	if cfg.Policy.DepthBuffer < 0 {
		return errors.InvalidInput("buffer must not be negative")
	}
	if cfg.ReplacementPercentile < 0 || cfg.ReplacementPercentile > 100 {
		return errors.InvalidInput("percentile must be in [0, 100]")
	}
	return nil
}

func (s *Server) compareRequestFromBody(c *gin.Context) (app.CompareRequest, error) {
	var body compareBody
	if err := c.ShouldBindJSON(&body); err != nil {
		return app.CompareRequest{}, errors.InvalidInput("invalid compare payload: " + err.Error())
	}
	return s.buildCompareRequest(body)
}

func (s *Server) buildCompareRequest(body compareBody) (app.CompareRequest, error) {
	cats := s.league.Categories
	if len(body.Categories) > 0 {
		cats = body.Categories
	}

	req := app.CompareRequest{
		Scoring: scoring.Config{
			Policy: scoring.PoolPolicy{
				Kind:         scoring.PolicyTopUsage,
				Teams:        s.league.Teams,
				SlotsPerTeam: s.league.SlotsPerTeam,
				DepthBuffer:  s.league.DepthBuffer,
				RankStat:     body.RankStat,
			},
			Missing:               scoring.MissingOmit,
			ReplacementPercentile: s.league.ReplacementPercentile,
		},
		Compare: compare.Request{
			SideA:      toPlayerIDs(body.SideA),
			SideB:      toPlayerIDs(body.SideB),
			Categories: player.NewCategorySet(cats...),
			Mode:       compare.Mode(body.Mode),
		},
	}

	if body.Policy != "" {
		req.Scoring.Policy.Kind = scoring.PolicyKind(body.Policy)
	}
	if body.Missing != "" {
		req.Scoring.Missing = scoring.MissingValuePolicy(body.Missing)
	}
	if body.Teams != nil {
		req.Scoring.Policy.Teams = *body.Teams
	}
	if body.Slots != nil {
		req.Scoring.Policy.SlotsPerTeam = *body.Slots
	}
	if body.Buffer != nil {
		req.Scoring.Policy.DepthBuffer = *body.Buffer
	}
	if body.Percentile != nil {
		req.Scoring.ReplacementPercentile = *body.Percentile
	}
	if err := validateRosterMath(req.Scoring); err != nil {
		return req, err
	}
	return req, nil
}

func toPlayerIDs(raw []string) []core.PlayerID {
	ids := make([]core.PlayerID, 0, len(raw))
	for _, r := range raw {
		if r != "" {
			ids = append(ids, core.PlayerID(r))
		}
	}
	return ids
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, errors.InvalidInput(key + " must be an integer")
	}
	return v, nil
}

func floatQuery(c *gin.Context, key string, fallback float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback, errors.InvalidInput(key + " must be a number")
	}
	return v, nil
}

// respondError translates domain and app errors into HTTP statuses.
func respondError(c *gin.Context, err error) {
	appErr := errors.FromDomain(err)
	status := http.StatusInternalServerError
	switch appErr.Code {
	case errors.CodeSchemaError, errors.CodeMissingAttribute, errors.CodeEmptyCategorySet, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeExternalService:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": appErr.Code, "message": appErr.Message})
}
