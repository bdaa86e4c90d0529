package domain

import (
	"context"
	"fmt"

	"github.com/pmn/cla-assistant/internal/entities"

	"golang.org/x/sync/errgroup"
)

// SignatureFinder looks up a signature of one exact CLA revision.
type SignatureFinder interface {
	FindExact(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error)
}

// Aggregator checks every committer of a pull request against the ledger.
type Aggregator struct {
	finder SignatureFinder
	limit  int
}

// NewAggregator constructs an Aggregator running at most limit lookups at
// once; limit <= 0 means unbounded.
func NewAggregator(finder SignatureFinder, limit int) *Aggregator {
	return &Aggregator{finder: finder, limit: limit}
}

// Aggregate partitions committers into signed and not signed for the
// revision in q. Duplicate names are checked once; output keeps first
// occurrence order. Any failed lookup fails the whole aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, committers []string, q entities.CLAQuery) (*entities.CommitterResult, error) {
	names := distinct(committers)
	signed := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	if a.limit > 0 {
		g.SetLimit(a.limit)
	}
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cq := q
			cq.User = name
			cla, err := a.finder.FindExact(gctx, cq)
			if err != nil {
				return fmt.Errorf("check committer %s: %w", name, err)
			}
			signed[i] = cla != nil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &entities.CommitterResult{
		Signed:    make([]string, 0, len(names)),
		NotSigned: make([]string, 0),
	}
	for i, name := range names {
		if signed[i] {
			res.Signed = append(res.Signed, name)
		} else {
			res.NotSigned = append(res.NotSigned, name)
		}
	}
	res.AllSigned = len(res.NotSigned) == 0
	return res, nil
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	res := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}
	return res
}
