package service

import (
	"log/slog"

	"roomlog/internal/feed"
	"roomlog/internal/repository"
	"roomlog/internal/utils"
)

// Options 控制服務的可調整行為
type Options struct {
	BcryptCost        int
	EnforceRoomAccess bool
}

type Services struct {
	User      *UserService
	Log       *LogService
	LogStream *LogStreamService
}

func NewServices(repos *repository.Repositories, hub *feed.Hub, logger *slog.Logger, opts Options) *Services {
	userService := NewUserService(repos.User, utils.NewBcryptHasher(opts.BcryptCost), utils.RandomKeyIssuer{}, logger)

	logOpts := []LogServiceOption{WithPublisher(hub)}
	if opts.EnforceRoomAccess {
		logOpts = append(logOpts, WithRoomAccessCheck(repos.User))
	}
	logService := NewLogService(repos.Log, logger, logOpts...)

	return &Services{
		User:      userService,
		Log:       logService,
		LogStream: NewLogStreamService(hub, logger),
	}
}
