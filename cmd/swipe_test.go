package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YongERong/wth-caifan-lovers/models"
	"github.com/YongERong/wth-caifan-lovers/pkg/swipe"
)

type memoryRecorder struct {
	decisions []models.SwipeDecision
}

func (r *memoryRecorder) Insert(ctx context.Context, d *models.SwipeDecision) error {
	r.decisions = append(r.decisions, *d)
	return nil
}

type immediateScheduler struct{}

func (immediateScheduler) AfterFunc(d time.Duration, f func()) { f() }

func newDeck(recorder swipe.Recorder, cards []models.Activity) (*swipe.Controller, chan swipe.State) {
	advanced := make(chan swipe.State, 1)
	deck := swipe.NewController("cli-user", cards, recorder,
		swipe.WithScheduler(immediateScheduler{}),
		swipe.WithOnAdvance(func(s swipe.State) { advanced <- s }))
	return deck, advanced
}

func TestPlayDeckSwipesAndSpringsBack(t *testing.T) {
	recorder := &memoryRecorder{}
	deck, advanced := newDeck(recorder, models.GetDefaultActivities()[:2])

	var out bytes.Buffer
	in := strings.NewReader("d 40 0\nl\nd -150 10\nq\n")
	require.NoError(t, playDeck(context.Background(), deck, advanced, in, &out))

	assert.Contains(t, out.String(), "[1/2] Morning Tai Chi")
	assert.Contains(t, out.String(), "sprang back")
	require.Len(t, recorder.decisions, 2)
	assert.Equal(t, models.SwipeLike, recorder.decisions[0].Action)
	assert.Equal(t, models.SwipePass, recorder.decisions[1].Action)
	assert.True(t, deck.State().Done)
}

func TestPlayDeckOnEmptyDeck(t *testing.T) {
	recorder := &memoryRecorder{}
	deck, advanced := newDeck(recorder, models.GetDefaultActivities()[:1])

	var out bytes.Buffer
	in := strings.NewReader("p\nd 300 0\nl\n")
	require.NoError(t, playDeck(context.Background(), deck, advanced, in, &out))

	assert.NotContains(t, out.String(), "sprang back")
	assert.Equal(t, 3, strings.Count(out.String(), "No more activities"))
	assert.Len(t, recorder.decisions, 1)
}

func TestParseDrag(t *testing.T) {
	dx, dy, err := parseDrag([]string{"120", "-5.5"})
	require.NoError(t, err)
	assert.Equal(t, 120.0, dx)
	assert.Equal(t, -5.5, dy)

	_, _, err = parseDrag([]string{"1"})
	assert.EqualError(t, err, "usage: d DX DY")

	_, _, err = parseDrag([]string{"x", "1"})
	assert.Error(t, err)
}
