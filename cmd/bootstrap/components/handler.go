package components

import (
	"gasthaus-reservations/internal/handler"
	"gasthaus-reservations/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewResourceHandler,
	),
	fx.Invoke(handler.NewRouter),
)
