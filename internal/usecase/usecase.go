package usecase

import (
	"time"

	"github.com/pmn/cla-assistant/internal/repository"
	"github.com/pmn/cla-assistant/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	CLAUsecaseInterface
	RepoUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	store repository.CLAInterface,
	repos domain.RepoService,
	resolver domain.GistResolver,
	status domain.StatusNotifier,
	timeout time.Duration,
	opts ...domain.Option,
) InterfaceUsecase {
	return domain.New(log, store, repos, resolver, status, timeout, opts...)
}
