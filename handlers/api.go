package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/playcall/models"
)

type submitResponse struct {
	Prediction models.Prediction `json:"prediction"`
	Persisted  bool              `json:"persisted"`
}

// State returns the full session snapshot.
func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.shell.Snapshot())
}

// APISelection updates both selects and returns the new snapshot.
func (h *Handler) APISelection(c echo.Context) error {
	req, err := h.bindSelection(c)
	if err != nil {
		return err
	}
	h.applySelection(req)
	return c.JSON(http.StatusOK, h.shell.Snapshot())
}

// APISubmit sets both selects from the body and locks the prediction in.
func (h *Handler) APISubmit(c echo.Context) error {
	req, err := h.bindSelection(c)
	if err != nil {
		return err
	}
	p, persisted, err := h.submit(c, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submitResponse{Prediction: p, Persisted: persisted})
}

// History returns the stats view: newest first, with total and count.
func (h *Handler) History(c echo.Context) error {
	hist := h.shell.History()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"predictions": hist.Predictions,
		"totalPoints": hist.TotalPoints,
		"count":       hist.Count,
		"empty":       hist.Empty(),
	})
}

// Options returns the scoring table.
func (h *Handler) Options(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"playTypes": models.PlayTypes(),
		"outcomes":  models.Outcomes(),
	})
}

// Notifications upgrades to the notification websocket.
func (h *Handler) Notifications(c echo.Context) error {
	// the upgrader has already written an error response on failure
	_ = h.hub.ServeWs(c.Response(), c.Request())
	return nil
}
