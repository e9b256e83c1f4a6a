package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/model"
	"github.com/yakoovad/club-api/internal/query"
	"github.com/yakoovad/club-api/internal/schema"
	"github.com/yakoovad/club-api/internal/service"
	"github.com/yakoovad/club-api/pkg/logger"
)

type Handler struct {
	clubs        *service.ClubService
	players      *service.PlayerService
	translations *service.TranslationService
	auth         *service.AuthService

	schemas        *schema.Registry
	healthChecker  HealthChecker
	authMiddleware echo.MiddlewareFunc
	corsOrigins    []string

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		schemas:        NewSchemaRegistry(),
		authMiddleware: AllowAll(),
		corsOrigins:    []string{"*"},
		logger:         logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithClubService(s *service.ClubService) *Handler {
	h.clubs = s
	return h
}

func (h *Handler) WithPlayerService(s *service.PlayerService) *Handler {
	h.players = s
	return h
}

func (h *Handler) WithTranslationService(s *service.TranslationService) *Handler {
	h.translations = s
	return h
}

func (h *Handler) WithAuthService(s *service.AuthService) *Handler {
	h.auth = s
	return h
}

func (h *Handler) WithAuthMiddleware(mw echo.MiddlewareFunc) *Handler {
	h.authMiddleware = mw
	return h
}

func (h *Handler) WithCORSOrigins(origins []string) *Handler {
	if len(origins) > 0 {
		h.corsOrigins = origins
	}
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     h.corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}

	e.POST("/auth/confirm_signup", h.ConfirmSignUp)

	clubs := e.Group("/clubs", h.authMiddleware)

	clubs.GET("", h.ListClubs)
	clubs.POST("", h.CreateClub)
	clubs.GET("/players", h.QueryPlayers)
	clubs.GET("/:clubId", h.GetClub)
	clubs.PUT("/:clubId", h.UpdateClub)
	clubs.DELETE("/:clubId", h.DeleteClub)
	clubs.GET("/:clubId/translate", h.TranslateClub)
	clubs.GET("/:clubId/players", h.ListClubPlayers)
	clubs.POST("/:clubId/players", h.CreatePlayer)
}

type dataResponse struct {
	Data any `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type clubRequest struct {
	ClubID  int64  `mapstructure:"clubId" validate:"gt=0"`
	Players string `mapstructure:"players"`
}

type translateRequest struct {
	ClubID   int64  `mapstructure:"clubId" validate:"gt=0"`
	Language string `mapstructure:"language"`
}

type playersRequest struct {
	ClubID  int64         `mapstructure:"clubId" validate:"gt=0"`
	Filters query.Filters `mapstructure:"-" validate:"-"`
}

type updateClubRequest struct {
	ClubID int64            `mapstructure:"clubId" validate:"gt=0"`
	Body   model.ClubUpdate `mapstructure:"-" validate:"-"`
}

type createPlayerRequest struct {
	ClubID int64              `mapstructure:"clubId" validate:"gt=0"`
	Body   model.PlayerCreate `mapstructure:"-" validate:"-"`
}

func withFilters(e echo.Context, req *playersRequest) *service.Error {
	req.Filters = query.FiltersFromParams(requestParams(e))
	return nil
}

func (h *Handler) ListClubs(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())
	l.Info("listing clubs")

	clubs, err := h.clubs.ListClubs(e.Request().Context())
	if err != nil {
		l.Error("failed to list clubs", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, dataResponse{Data: clubs})
}

func (h *Handler) CreateClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req model.ClubCreate
	if err := ProcessRequest(e, &req, bodyStep[model.ClubCreate](h.schemas, schemaClubCreate)); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("creating club", zap.Int64("club_id", req.ID))

	club, err := h.clubs.CreateClub(e.Request().Context(), &req)
	if err != nil {
		l.Error("failed to create club", zap.Int64("club_id", req.ID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, dataResponse{Data: club})
}

func (h *Handler) GetClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req clubRequest
	if err := ProcessRequest(e, &req, paramsStep[clubRequest](h.schemas, schemaClubPath)); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("getting club", zap.Int64("club_id", req.ClubID))

	club, err := h.clubs.GetClub(e.Request().Context(), req.ClubID, req.Players == "true")
	if err != nil {
		l.Error("failed to get club", zap.Int64("club_id", req.ClubID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, club)
}

func (h *Handler) UpdateClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req updateClubRequest
	err := ProcessRequest(e, &req,
		paramsStep[updateClubRequest](h.schemas, schemaClubPath),
		func(e echo.Context, r *updateClubRequest) *service.Error {
			return decodeBody(e, h.schemas, schemaClubUpdate, &r.Body)
		},
	)
	if err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("updating club", zap.Int64("club_id", req.ClubID))

	club, err := h.clubs.UpdateClub(e.Request().Context(), req.ClubID, &req.Body)
	if err != nil {
		l.Error("failed to update club", zap.Int64("club_id", req.ClubID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, dataResponse{Data: club})
}

func (h *Handler) DeleteClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req clubRequest
	if err := ProcessRequest(e, &req, paramsStep[clubRequest](h.schemas, schemaClubPath)); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("deleting club", zap.Int64("club_id", req.ClubID))

	if err := h.clubs.DeleteClub(e.Request().Context(), req.ClubID); err != nil {
		l.Error("failed to delete club", zap.Int64("club_id", req.ClubID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, messageResponse{
		Message: "club deleted",
		Data:    map[string]int64{"id": req.ClubID},
	})
}

func (h *Handler) TranslateClub(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req translateRequest
	if err := ProcessRequest(e, &req, paramsStep[translateRequest](h.schemas, schemaTranslateQuery)); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("translating club", zap.Int64("club_id", req.ClubID), zap.String("language", req.Language))

	club, err := h.translations.GetTranslatedName(e.Request().Context(), req.ClubID, req.Language)
	if err != nil {
		l.Error("failed to translate club",
			zap.Int64("club_id", req.ClubID),
			zap.String("language", req.Language),
			zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, dataResponse{Data: club})
}

func (h *Handler) ListClubPlayers(e echo.Context) error {
	return h.listPlayers(e, schemaClubPlayersPathQuery)
}

func (h *Handler) QueryPlayers(e echo.Context) error {
	return h.listPlayers(e, schemaClubPlayerQueryParams)
}

func (h *Handler) listPlayers(e echo.Context, schemaName string) error {
	l := logger.FromContext(e.Request().Context())

	var req playersRequest
	if err := ProcessRequest(e, &req, paramsStep[playersRequest](h.schemas, schemaName), withFilters); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("listing players", zap.Int64("club_id", req.ClubID))

	players, err := h.players.ListPlayers(e.Request().Context(), req.ClubID, req.Filters)
	if err != nil {
		l.Error("failed to list players", zap.Int64("club_id", req.ClubID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, dataResponse{Data: players})
}

func (h *Handler) CreatePlayer(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req createPlayerRequest
	err := ProcessRequest(e, &req,
		paramsStep[createPlayerRequest](h.schemas, schemaClubPath),
		func(e echo.Context, r *createPlayerRequest) *service.Error {
			return decodeBody(e, h.schemas, schemaPlayerCreate, &r.Body)
		},
	)
	if err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("creating player", zap.Int64("club_id", req.ClubID), zap.String("player_name", req.Body.PlayerName))

	player, err := h.players.CreatePlayer(e.Request().Context(), req.ClubID, &req.Body)
	if err != nil {
		l.Error("failed to create player", zap.Int64("club_id", req.ClubID), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusCreated, dataResponse{Data: player})
}

func (h *Handler) ConfirmSignUp(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	var req model.ConfirmSignUp
	if err := ProcessRequest(e, &req, bodyStep[model.ConfirmSignUp](h.schemas, schemaConfirmSignUpBody)); err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	if err := h.auth.ConfirmSignUp(e.Request().Context(), &req); err != nil {
		l.Error("failed to confirm sign-up", zap.String("username", req.Username), zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, struct {
		Message   string `json:"message"`
		Confirmed bool   `json:"confirmed"`
	}{Message: "user confirmed", Confirmed: true})
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, err)
	case service.ErrorCodeInvalidBody, service.ErrorCodeInvalidParameter:
		return e.JSON(http.StatusBadRequest, err)
	case service.ErrorCodeUnauthorized:
		return e.JSON(http.StatusUnauthorized, err)
	default:
		return e.JSON(http.StatusInternalServerError, err)
	}
}
