package domain

import (
	"context"
	"time"

	"github.com/pmn/cla-assistant/internal/entities"
	"github.com/pmn/cla-assistant/internal/repository"

	"go.uber.org/zap"
)

// RepoService resolves repository links and pull request data.
type RepoService interface {
	Get(ctx context.Context, repo, owner string) (*entities.RepoConfig, error)
	Link(ctx context.Context, cfg entities.RepoConfig) (*entities.RepoConfig, error)
	PRCommitters(ctx context.Context, cfg entities.RepoConfig, number int) ([]entities.Committer, error)
	OpenPullRequests(ctx context.Context, cfg entities.RepoConfig) ([]entities.PullRequest, error)
}

// GistResolver fetches the current state of a CLA gist.
type GistResolver interface {
	Resolve(ctx context.Context, locator entities.GistLocator, token string) (*entities.Gist, error)
}

// StatusNotifier publishes the CLA state of a pull request.
type StatusNotifier interface {
	UpdateStatus(ctx context.Context, upd entities.StatusUpdate) error
}

// Lookup is the outcome of a RevisionLookup. Repo is nil when the repository
// is not linked; Gist is nil when it has no gist configured.
type Lookup struct {
	Signed bool
	Repo   *entities.RepoConfig
	Gist   *entities.Gist
}

// RevisionLookup reports whether user signed the current CLA revision of a
// repository.
type RevisionLookup interface {
	Lookup(ctx context.Context, repo, owner, user string) (*Lookup, error)
}

// RecordCreator persists a new signature.
type RecordCreator interface {
	Append(ctx context.Context, cla entities.CLA) (*entities.CLA, error)
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log        *zap.SugaredLogger
	store      repository.CLAInterface
	repos      RepoService
	resolver   GistResolver
	status     StatusNotifier
	aggregator *Aggregator
	lookup     RevisionLookup
	creator    RecordCreator
	timeout    time.Duration
	now        func() time.Time
}

// Option customizes a Usecase.
type Option func(*Usecase)

// WithRevisionLookup replaces the lookup step used by Sign.
func WithRevisionLookup(l RevisionLookup) Option {
	return func(u *Usecase) { u.lookup = l }
}

// WithRecordCreator replaces the record creation step used by Sign.
func WithRecordCreator(c RecordCreator) Option {
	return func(u *Usecase) { u.creator = c }
}

// WithMaxParallelLookups bounds concurrent committer lookups per check.
func WithMaxParallelLookups(n int) Option {
	return func(u *Usecase) { u.aggregator = NewAggregator(u.store, n) }
}

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(u *Usecase) { u.now = now }
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	store repository.CLAInterface,
	repos RepoService,
	resolver GistResolver,
	status StatusNotifier,
	timeout time.Duration,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		log:        log.Named("usecase"),
		store:      store,
		repos:      repos,
		resolver:   resolver,
		status:     status,
		aggregator: NewAggregator(store, 0),
		creator:    store,
		timeout:    timeout,
		now:        time.Now,
	}
	u.lookup = revisionLookup{u: u}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
