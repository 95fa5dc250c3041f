package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/platform/logging"
	"github.com/fplhq/companion/internal/usecase"
)

type Handler struct {
	snapshots       *usecase.SnapshotService
	liveScore       *usecase.LiveScoreService
	breakdown       *usecase.BreakdownService
	bonus           *usecase.BonusService
	recommendations *usecase.RecommendationService
	dashboard       *usecase.DashboardService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	snapshots *usecase.SnapshotService,
	liveScore *usecase.LiveScoreService,
	breakdown *usecase.BreakdownService,
	bonus *usecase.BonusService,
	recommendations *usecase.RecommendationService,
	dashboard *usecase.DashboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		snapshots:       snapshots,
		liveScore:       liveScore,
		breakdown:       breakdown,
		bonus:           bonus,
		recommendations: recommendations,
		dashboard:       dashboard,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetEntryLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntryLive")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	event, err := h.resolveEvent(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, entryEventQuery{EntryID: entryID, Event: event}); err != nil {
		writeError(ctx, w, err)
		return
	}

	live, err := h.liveScore.GetEntryLive(ctx, entryID, event)
	if err != nil {
		h.logger.WarnContext(ctx, "get entry live failed", "entry_id", entryID, "event", event, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryLiveToDTO(ctx, live))
}

func (h *Handler) GetEntryBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntryBreakdown")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	from, err := queryInt(r, "from", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := queryInt(r, "to", from)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, breakdownQuery{EntryID: entryID, From: from, To: to}); err != nil {
		writeError(ctx, w, err)
		return
	}

	shares, err := h.breakdown.PositionBreakdown(ctx, entryID, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "position breakdown failed", "entry_id", entryID, "from", from, "to", to, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]positionShareDTO, 0, len(shares))
	for _, share := range shares {
		items = append(items, positionShareDTO{
			Position:   share.Position.String(),
			Points:     share.Points,
			Percentage: share.Percentage,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, breakdownDTO{
		EntryID: entryID,
		From:    from,
		To:      to,
		Shares:  items,
	})
}

func (h *Handler) GetEntrySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEntrySummary")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.dashboard.Summary(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "entry summary failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaryToDTO(ctx, summary))
}

func (h *Handler) GetEventBonus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventBonus")
	defer span.End()

	event, err := pathInt(r, "event")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.bonus.EventBonus(ctx, event)
	if err != nil {
		h.logger.WarnContext(ctx, "event bonus failed", "event", event, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureBonusDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureBonusToDTO(ctx, f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecommendations")
	defer span.End()

	position, err := parsePosition(r.URL.Query().Get("position"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.recommendations.TopPicks(ctx, position, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "recommendations failed", "position", position.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]recommendationDTO, 0, len(picks))
	for _, pick := range picks {
		items = append(items, recommendationToDTO(ctx, pick))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// resolveEvent reads the optional event query parameter, falling back to the
// current gameweek.
func (h *Handler) resolveEvent(ctx context.Context, r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("event"))
	if raw != "" {
		event, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: event must be an integer", usecase.ErrInvalidInput)
		}
		return event, nil
	}

	current, err := h.snapshots.CurrentGameweek(ctx)
	if err != nil {
		return 0, err
	}
	return current.ID, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func parsePosition(raw string) (player.Position, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	for _, pos := range player.AllPositions {
		if pos.String() == name {
			return pos, nil
		}
	}
	return 0, fmt.Errorf("%w: position must be one of GK, DEF, MID, FWD", usecase.ErrInvalidInput)
}

type entryEventQuery struct {
	EntryID int `validate:"gt=0"`
	Event   int `validate:"gt=0,lte=38"`
}

type breakdownQuery struct {
	EntryID int `validate:"gt=0"`
	From    int `validate:"gt=0,lte=38"`
	To      int `validate:"gtefield=From,lte=38"`
}

type entryLiveDTO struct {
	EntryID      int                  `json:"entryId"`
	Event        int                  `json:"event"`
	Total        int                  `json:"total"`
	TransferCost int                  `json:"transferCost"`
	Players      []entryLivePlayerDTO `json:"players"`
}

type entryLivePlayerDTO struct {
	Element     int    `json:"element"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Points      int    `json:"points"`
	Multiplier  int    `json:"multiplier"`
	IsCaptain   bool   `json:"isCaptain"`
	InFinalTeam bool   `json:"inFinalTeam"`
	Started     bool   `json:"started"`
	Finished    bool   `json:"finished"`
	Opponent    string `json:"opponent"`
	IsHome      bool   `json:"isHome"`
}

type breakdownDTO struct {
	EntryID int                `json:"entryId"`
	From    int                `json:"from"`
	To      int                `json:"to"`
	Shares  []positionShareDTO `json:"shares"`
}

type positionShareDTO struct {
	Position   string `json:"position"`
	Points     int    `json:"points"`
	Percentage int    `json:"percentage"`
}

type fixtureBonusDTO struct {
	FixtureID   int             `json:"fixtureId"`
	Home        string          `json:"home"`
	Away        string          `json:"away"`
	Finished    bool            `json:"finished"`
	Provisional bool            `json:"provisional"`
	Awards      []bonusAwardDTO `json:"awards"`
}

type bonusAwardDTO struct {
	Element int    `json:"element"`
	Name    string `json:"name"`
	BPS     int    `json:"bps"`
	Bonus   int    `json:"bonus"`
}

type recommendationDTO struct {
	Element           int     `json:"element"`
	Name              string  `json:"name"`
	Team              string  `json:"team"`
	Position          string  `json:"position"`
	NowCost           int     `json:"nowCost"`
	Form              float64 `json:"form"`
	InvolvementPer90  float64 `json:"involvementPer90"`
	PercentileRank    float64 `json:"percentileRank"`
	FixtureDifficulty int     `json:"fixtureDifficulty"`
	Score             float64 `json:"score"`
}

type historyRowDTO struct {
	Event        int `json:"event"`
	Points       int `json:"points"`
	TotalPoints  int `json:"totalPoints"`
	Rank         int `json:"rank"`
	OverallRank  int `json:"overallRank"`
	TransferCost int `json:"transferCost"`
	BenchPoints  int `json:"benchPoints"`
}

type ownershipRowDTO struct {
	Element            int     `json:"element"`
	EffectiveOwnership float64 `json:"effectiveOwnership"`
	CaptaincyPercent   float64 `json:"captaincyPercent"`
}

type summaryDTO struct {
	EntryID   int               `json:"entryId"`
	Event     int               `json:"event"`
	Live      entryLiveDTO      `json:"live"`
	History   []historyRowDTO   `json:"history"`
	Ownership []ownershipRowDTO `json:"ownership,omitempty"`
}

func entryLiveToDTO(ctx context.Context, live usecase.EntryLive) entryLiveDTO {
	ctx, span := startSpan(ctx, "httpapi.entryLiveToDTO")
	defer span.End()

	players := make([]entryLivePlayerDTO, 0, len(live.Players))
	for _, p := range live.Players {
		players = append(players, entryLivePlayerDTO{
			Element:     p.Element,
			Name:        p.Name,
			Position:    p.Position.String(),
			Points:      p.Points,
			Multiplier:  p.Multiplier,
			IsCaptain:   p.IsCaptain,
			InFinalTeam: p.InFinalTeam,
			Started:     p.Started,
			Finished:    p.Finished,
			Opponent:    p.OpponentShort,
			IsHome:      p.IsHome,
		})
	}

	return entryLiveDTO{
		EntryID:      live.EntryID,
		Event:        live.Event,
		Total:        live.Total,
		TransferCost: live.TransferCost,
		Players:      players,
	}
}

func fixtureBonusToDTO(ctx context.Context, f usecase.FixtureBonus) fixtureBonusDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureBonusToDTO")
	defer span.End()

	awards := make([]bonusAwardDTO, 0, len(f.Awards))
	for _, award := range f.Awards {
		awards = append(awards, bonusAwardDTO{
			Element: award.Element,
			Name:    award.Name,
			BPS:     award.BPS,
			Bonus:   award.Bonus,
		})
	}

	return fixtureBonusDTO{
		FixtureID:   f.FixtureID,
		Home:        f.HomeShort,
		Away:        f.AwayShort,
		Finished:    f.Finished,
		Provisional: f.Provisional,
		Awards:      awards,
	}
}

func recommendationToDTO(ctx context.Context, rec usecase.Recommendation) recommendationDTO {
	ctx, span := startSpan(ctx, "httpapi.recommendationToDTO")
	defer span.End()

	return recommendationDTO{
		Element:           rec.Element,
		Name:              rec.Name,
		Team:              rec.TeamShort,
		Position:          rec.Position.String(),
		NowCost:           rec.NowCost,
		Form:              rec.Form,
		InvolvementPer90:  rec.InvolvementPer90,
		PercentileRank:    rec.PercentileRank,
		FixtureDifficulty: rec.FixtureDifficulty,
		Score:             rec.Score,
	}
}

func summaryToDTO(ctx context.Context, summary usecase.EntrySummary) summaryDTO {
	ctx, span := startSpan(ctx, "httpapi.summaryToDTO")
	defer span.End()

	history := make([]historyRowDTO, 0, len(summary.History))
	for _, row := range summary.History {
		history = append(history, historyRowDTO{
			Event:        row.Event,
			Points:       row.Points,
			TotalPoints:  row.TotalPoints,
			Rank:         row.Rank,
			OverallRank:  row.OverallRank,
			TransferCost: row.TransferCost,
			BenchPoints:  row.BenchPoints,
		})
	}

	ownership := make([]ownershipRowDTO, 0, len(summary.Ownership))
	for _, row := range summary.Ownership {
		ownership = append(ownership, ownershipRowDTO{
			Element:            row.Element,
			EffectiveOwnership: row.EffectiveOwnership,
			CaptaincyPercent:   row.CaptaincyPercent,
		})
	}

	return summaryDTO{
		EntryID:   summary.EntryID,
		Event:     summary.Event,
		Live:      entryLiveToDTO(ctx, summary.Live),
		History:   history,
		Ownership: ownership,
	}
}
