package repository

import (
	"colloquy/dialogue-api/internal/infrastructure/database/repository/historyrepo"
	"colloquy/dialogue-api/internal/infrastructure/database/repository/rolerepo"
	"colloquy/dialogue-api/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	rolerepo.NewRoleGormRepository,
	historyrepo.NewHistoryGormRepository,
	userrepo.NewUserGormRepository,
)
