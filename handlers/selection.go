package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/playcall/game"
	"github.com/padraicbc/playcall/models"
	"github.com/padraicbc/playcall/store"
)

// selectionRequest carries both selects. An empty value clears that field.
type selectionRequest struct {
	PlayType string `json:"playType" form:"playType" validate:"omitempty,playtype"`
	Result   string `json:"result" form:"result" validate:"omitempty,outcome"`
}

func (h *Handler) bindSelection(c echo.Context) (selectionRequest, error) {
	var req selectionRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "unknown play type or result")
	}
	return req, nil
}

func (r selectionRequest) selection() game.Selection {
	return game.Selection{PlayType: models.PlayType(r.PlayType), Result: models.Outcome(r.Result)}
}

func (h *Handler) applySelection(req selectionRequest) int {
	h.shell.SelectPlayType(models.PlayType(req.PlayType))
	return h.shell.SelectResult(models.Outcome(req.Result))
}

// submit locks in req as one shell transition and records metrics. persisted
// is false when the record only lives in memory.
func (h *Handler) submit(c echo.Context, req selectionRequest) (p models.Prediction, persisted bool, err error) {
	p, err = h.shell.SubmitSelection(c.Request().Context(), req.selection())
	switch {
	case errors.Is(err, game.ErrIncomplete):
		return p, false, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		h.metrics.StoreFailures.Inc()
	case err != nil:
		return p, false, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.metrics.Predictions.WithLabelValues(string(p.PlayType), string(p.Result)).Inc()
	return p, err == nil, nil
}
