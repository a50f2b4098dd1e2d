package handlers

import (
	"go.uber.org/zap"

	"github.com/padraicbc/playcall/game"
	"github.com/padraicbc/playcall/logger"
	"github.com/padraicbc/playcall/metrics"
	"github.com/padraicbc/playcall/notify"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	shell   *game.Shell
	hub     *notify.Hub
	metrics *metrics.Metrics
	log     *zap.Logger
}

// New creates a Handler for one game session.
func New(shell *game.Shell, hub *notify.Hub, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{shell: shell, hub: hub, metrics: m, log: logger.Component(log, "http")}
}
