package bootstrap

import (
	"log/slog"

	"gasthaus-reservations/internal/domain/catalog"
	"gasthaus-reservations/internal/infra/store"
	"gasthaus-reservations/internal/pkg/clock"
	"gasthaus-reservations/internal/pkg/config"
	"gasthaus-reservations/internal/usecase"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		catalog.New,
		fx.Annotate(
			NewStore,
			fx.As(new(usecase.ReservationStore)),
		),
	),
	fx.Invoke(
		runStartupCleanup,
	),
)

func NewStore(cfg config.Config, clk clock.Clock, logger *slog.Logger) *store.Store {
	return store.New(cfg.Store, clk, logger)
}

// runStartupCleanup drops reservations older than the retention window once
// at process start; there is no recurring timer.
func runStartupCleanup(s usecase.ReservationStore, logger *slog.Logger) {
	removed, err := s.CleanupOld()
	if err != nil {
		logger.Error("startup cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("startup cleanup finished", "removed", removed)
	}
}
