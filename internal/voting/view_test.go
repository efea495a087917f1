package voting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ Votes int }

func TestViewApplyKeepsStateOnSuccess(t *testing.T) {
	view := NewView(counter{Votes: 1})

	var seenDuringCommit counter
	err := view.Apply(context.Background(), counter{Votes: 2},
		func(context.Context, counter) error {
			seenDuringCommit = view.State()
			return nil
		},
		func(context.Context) (counter, error) {
			t.Fatal("reload must not be called")
			return counter{}, nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, 2, seenDuringCommit.Votes, "state is applied before the write completes")
	assert.Equal(t, 2, view.State().Votes)
}

func TestViewApplyReloadsOnFailure(t *testing.T) {
	view := NewView(counter{Votes: 1})
	writeErr := errors.New("timeout")

	err := view.Apply(context.Background(), counter{Votes: 2},
		func(context.Context, counter) error { return writeErr },
		func(context.Context) (counter, error) { return counter{Votes: 7}, nil },
	)

	require.ErrorIs(t, err, writeErr)
	assert.Equal(t, 7, view.State().Votes)
}

func TestViewApplyRestoresPreviousWhenReloadFails(t *testing.T) {
	view := NewView(counter{Votes: 1})
	writeErr := errors.New("timeout")

	err := view.Apply(context.Background(), counter{Votes: 2},
		func(context.Context, counter) error { return writeErr },
		func(context.Context) (counter, error) { return counter{}, errors.New("offline") },
	)

	require.ErrorIs(t, err, writeErr)
	assert.Equal(t, 1, view.State().Votes)
}
