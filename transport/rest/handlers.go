package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

const maxBodyBytes = 1 << 12

var ErrInvalidRequest = errors.New("invalid request")

type gameUseCase interface {
	StartGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action entity.Action) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (entity.Action, error)
	Solve(board entity.Board) (*usecase.Solution, error)
	Analyze(ctx context.Context, board entity.Board) ([]minimax.MoveScore, error)
}

type startGameRequest struct {
	Mark entity.Mark `json:"mark"`
}

type boardRequest struct {
	Board entity.Board `json:"board"`
}

type gameResponse struct {
	ID        string       `json:"id"`
	Board     entity.Board `json:"board"`
	Status    string       `json:"status"`
	Winner    entity.Mark  `json:"winner"`
	Turn      entity.Mark  `json:"player_turn"`
	HumanMark entity.Mark  `json:"human_mark"`
	BotMark   entity.Mark  `json:"bot_mark"`
}

type solveResponse struct {
	Move     *entity.Action `json:"move"`
	Score    int            `json:"score"`
	Terminal bool           `json:"terminal"`
	Winner   entity.Mark    `json:"winner"`
}

type moveScoreResponse struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Score int `json:"score"`
}

type analyzeResponse struct {
	Moves []moveScoreResponse `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger  *slog.Logger
	useCase gameUseCase
}

func NewHandlers(logger *slog.Logger, useCase gameUseCase) *Handlers {
	return &Handlers{
		logger:  logger.With("component", "rest"),
		useCase: useCase,
	}
}

// Routes - registers every endpoint on a new mux.
func (that *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.Ping)
	mux.HandleFunc("POST /games", that.StartGame)
	mux.HandleFunc("GET /games/{id}", that.GetGame)
	mux.HandleFunc("POST /games/{id}/turns", that.MakeTurn)
	mux.HandleFunc("GET /games/{id}/hint", that.Hint)
	mux.HandleFunc("POST /solve", that.Solve)
	mux.HandleFunc("POST /analyze", that.Analyze)

	return mux
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.useCase.StartGame(r.Context(), req.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, toGameResponse(game))
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.useCase.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, toGameResponse(game))
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var action entity.Action
	if err := decodeBody(w, r, &action); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.useCase.MakeTurn(r.Context(), r.PathValue("id"), action)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, toGameResponse(game))
}

func (that *Handlers) Hint(w http.ResponseWriter, r *http.Request) {
	action, err := that.useCase.Hint(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, action)
}

func (that *Handlers) Solve(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	solution, err := that.useCase.Solve(req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, solveResponse{
		Move:     solution.Move,
		Score:    solution.Score,
		Terminal: solution.Terminal,
		Winner:   solution.Winner,
	})
}

func (that *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req boardRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	scores, err := that.useCase.Analyze(r.Context(), req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analyzeResponse{
		Moves: lo.Map(scores, func(item minimax.MoveScore, _ int) moveScoreResponse {
			return moveScoreResponse{Row: item.Action.Row, Col: item.Action.Col, Score: item.Score}
		}),
	})
}

func toGameResponse(game *entity.Game) gameResponse {
	return gameResponse{
		ID:        game.ID,
		Board:     game.Board,
		Status:    game.Status,
		Winner:    game.Winner,
		Turn:      game.Turn(),
		HumanMark: game.HumanMark,
		BotMark:   game.BotMark,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return nil
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
