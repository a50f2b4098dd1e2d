package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/playcall/web"
)

// Index renders the entry or history screen, whichever is current.
func (h *Handler) Index(c echo.Context) error {
	page := web.NewPage(h.shell.Snapshot())
	return c.Render(http.StatusOK, page.Template(), page)
}

// Select stores the posted selects without submitting.
func (h *Handler) Select(c echo.Context) error {
	req, err := h.bindSelection(c)
	if err != nil {
		return err
	}
	h.applySelection(req)
	return c.Redirect(http.StatusSeeOther, "/")
}

// SubmitPrediction locks in the posted selects for the current quarter.
func (h *Handler) SubmitPrediction(c echo.Context) error {
	req, err := h.bindSelection(c)
	if err != nil {
		return err
	}
	if _, _, err := h.submit(c, req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnprocessableEntity {
			// the shell is untouched, so echo back what was posted
			page := web.NewPage(h.shell.Snapshot())
			page.SelectedPlayType, page.SelectedResult = req.PlayType, req.Result
			page.Error = "Choose a play type and an outcome first."
			return c.Render(http.StatusUnprocessableEntity, page.Template(), page)
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// AdvanceQuarter moves to the next quarter.
func (h *Handler) AdvanceQuarter(c echo.Context) error {
	h.shell.AdvanceQuarter()
	return c.Redirect(http.StatusSeeOther, "/")
}

// ToggleView switches between the entry and history screens.
func (h *Handler) ToggleView(c echo.Context) error {
	h.shell.ToggleView()
	return c.Redirect(http.StatusSeeOther, "/")
}
