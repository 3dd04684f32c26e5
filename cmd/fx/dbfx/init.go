package dbfx

import (
	"go.uber.org/fx"

	"bumpline/internal/infra"
)

var Module = fx.Provide(infra.InitPostgresql)
