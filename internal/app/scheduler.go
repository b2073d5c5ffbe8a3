package app

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/infrastructure/scheduler"
	"github.com/saradorri/tournamenthub/internal/infrastructure/storage"
)

func (a *application) InitScheduler(clock clockwork.Clock, log *logger.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(clock, log)
}

func (a *application) InitImageStore(log *logger.Logger) (domain.ImageStore, error) {
	return storage.New(context.Background(), a.config.Storage, log)
}
