package domain

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pmn/cla-assistant/internal/entities"

	"github.com/stretchr/testify/require"
)

type finderFunc func(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error)

func (f finderFunc) FindExact(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error) {
	return f(ctx, q)
}

func TestAggregateKeepsInputOrder(t *testing.T) {
	signed := map[string]bool{"b": true, "d": true}
	agg := NewAggregator(finderFunc(func(_ context.Context, q entities.CLAQuery) (*entities.CLA, error) {
		if signed[q.User] {
			return &entities.CLA{User: q.User}, nil
		}
		return nil, nil
	}), 2)

	res, err := agg.Aggregate(context.Background(), []string{"d", "a", "b", "c", "a"}, entities.CLAQuery{Repo: "r", Owner: "o"})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "b"}, res.Signed)
	require.Equal(t, []string{"a", "c"}, res.NotSigned)
	require.False(t, res.AllSigned)
}

func TestAggregateDeduplicates(t *testing.T) {
	var calls atomic.Int32
	agg := NewAggregator(finderFunc(func(_ context.Context, q entities.CLAQuery) (*entities.CLA, error) {
		calls.Add(1)
		return &entities.CLA{User: q.User}, nil
	}), 0)

	res, err := agg.Aggregate(context.Background(), []string{"x", "x", "X"}, entities.CLAQuery{})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "X"}, res.Signed)
	require.True(t, res.AllSigned)
	require.EqualValues(t, 2, calls.Load())
}

func TestAggregateEmpty(t *testing.T) {
	agg := NewAggregator(finderFunc(func(context.Context, entities.CLAQuery) (*entities.CLA, error) {
		t.Fatal("unexpected lookup")
		return nil, nil
	}), 1)

	res, err := agg.Aggregate(context.Background(), nil, entities.CLAQuery{})
	require.NoError(t, err)
	require.True(t, res.AllSigned)
	require.Empty(t, res.Signed)
	require.Empty(t, res.NotSigned)
}

func TestAggregateFirstErrorCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	agg := NewAggregator(finderFunc(func(ctx context.Context, q entities.CLAQuery) (*entities.CLA, error) {
		if q.User == "bad" {
			return nil, boom
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, nil
		}
	}), 0)

	start := time.Now()
	res, err := agg.Aggregate(context.Background(), []string{"a", "bad", "c"}, entities.CLAQuery{})
	require.ErrorIs(t, err, boom)
	require.Nil(t, res)
	require.Less(t, time.Since(start), 5*time.Second)
}
