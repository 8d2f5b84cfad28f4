package components

import (
	"gasthaus-reservations/internal/pkg/clock"
	"gasthaus-reservations/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewEngine,
		usecase.NewReservations,
	),
)
