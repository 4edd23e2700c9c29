package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"cfb-catalog/internal/domain/league"
	"cfb-catalog/internal/domain/player"
	"cfb-catalog/internal/usecase"
)

type Handler struct {
	searchService *usecase.SearchService
	authService   *usecase.AuthService
	leagueService *usecase.LeagueService
	ingestService *usecase.IngestService
	defaultSeason int
	logger        *slog.Logger
	validator     *validator.Validate
}

func NewHandler(
	searchService *usecase.SearchService,
	authService *usecase.AuthService,
	leagueService *usecase.LeagueService,
	ingestService *usecase.IngestService,
	defaultSeason int,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		searchService: searchService,
		authService:   authService,
		leagueService: leagueService,
		ingestService: ingestService,
		defaultSeason: defaultSeason,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	params := r.URL.Query()
	query := strings.TrimSpace(params.Get("query"))
	if query == "" {
		writeError(ctx, w, fmt.Errorf("%w: query parameter is required", usecase.ErrInvalidInput))
		return
	}

	limit := 0
	if rawLimit := strings.TrimSpace(params.Get("limit")); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	cards, err := h.searchService.SearchPlayers(ctx, usecase.SearchQuery{
		Text:       query,
		Position:   params.Get("position"),
		Conference: params.Get("conference"),
		Limit:      limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "player search failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerCardDTO, 0, len(cards))
	for _, card := range cards {
		items = append(items, playerCardToDTO(card))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Signup")
	defer span.End()

	var req credentialsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Signup(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "signup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(session))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req credentialsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(session))
}

func (h *Handler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateSession")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, principalDTO{
		UserID: principal.UserID,
		Email:  principal.Email,
	})
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.leagueService.CreateLeague(ctx, principal.UserID, usecase.CreateLeagueInput{
		Name:      req.Name,
		TeamCount: req.TeamCount,
		Scoring:   req.Scoring,
		Draft:     req.Draft,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(created))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagues, err := h.leagueService.ListMyLeagues(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		items = append(items, leagueToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// RunIngest executes one synchronous ingest pass. Failures during the
// run surface inside the outcome payload, not as an HTTP error.
func (h *Handler) RunIngest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngest")
	defer span.End()

	season := h.defaultSeason
	if r.Body != nil && r.ContentLength != 0 {
		var req runIngestRequest
		if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if req.Season != 0 {
			season = req.Season
		}
	}

	outcome := h.ingestService.Run(ctx, season)
	writeSuccess(ctx, w, http.StatusOK, ingestOutcomeToDTO(season, outcome))
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type createLeagueRequest struct {
	Name      string `json:"name" validate:"max=100"`
	TeamCount int    `json:"teamCount" validate:"omitempty,min=2,max=32"`
	Scoring   string `json:"scoring" validate:"omitempty,oneof=ppr standard"`
	Draft     string `json:"draft" validate:"omitempty,oneof=snake auction"`
}

type runIngestRequest struct {
	Season int `json:"season" validate:"omitempty,min=1869"`
}

type playerCardDTO struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	Conference string `json:"conference"`
	ClassYear  string `json:"classYear"`
}

type principalDTO struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type sessionDTO struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type leagueDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeamCount int    `json:"teamCount"`
	Scoring   string `json:"scoring"`
	Draft     string `json:"draft"`
	CreatedAt string `json:"createdAt"`
}

type ingestOutcomeDTO struct {
	Season        int      `json:"season"`
	Inserted      int      `json:"inserted"`
	Updated       int      `json:"updated"`
	TeamsInserted int      `json:"teamsInserted"`
	TeamsUpdated  int      `json:"teamsUpdated"`
	APICalls      int      `json:"apiCalls"`
	Errors        []string `json:"errors"`
}

func playerCardToDTO(v player.Card) playerCardDTO {
	return playerCardDTO{
		ID:         v.ID,
		FullName:   v.FullName,
		Team:       v.Team,
		Position:   v.Position,
		Conference: v.Conference,
		ClassYear:  v.ClassYear,
	}
}

func sessionToDTO(v usecase.Session) sessionDTO {
	return sessionDTO{
		Token:  v.Token,
		UserID: v.Principal.UserID,
		Email:  v.Principal.Email,
	}
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:        v.ID,
		Name:      v.Name,
		TeamCount: v.TeamCount,
		Scoring:   v.Scoring,
		Draft:     v.Draft,
		CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ingestOutcomeToDTO(season int, v usecase.IngestOutcome) ingestOutcomeDTO {
	errs := v.Errors
	if errs == nil {
		errs = []string{}
	}

	return ingestOutcomeDTO{
		Season:        season,
		Inserted:      v.Inserted,
		Updated:       v.Updated,
		TeamsInserted: v.TeamsInserted,
		TeamsUpdated:  v.TeamsUpdated,
		APICalls:      v.APICalls,
		Errors:        errs,
	}
}
