package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

type Handler struct {
	seasonService *usecase.SeasonService
	careerService *usecase.CareerService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	careerService *usecase.CareerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService: seasonService,
		careerService: careerService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type selectClubRequest struct {
	ClubID string `json:"club_id" validate:"required,max=16"`
}

type playerActionRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type careerSubmitRequest struct {
	Name     string `json:"name" validate:"required,max=60"`
	Position string `json:"position" validate:"required"`
}

type careerAcceptRequest struct {
	ClubID string `json:"club_id" validate:"required,max=16"`
}
