package hal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var n int
	err := RunHeadless(context.Background(), func() error { n++; return nil }, HeadlessConfig{Hz: 1000, Ticks: 3})
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunHeadlessStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func() error { return boom }, HeadlessConfig{Hz: 1000})
	assert.ErrorIs(t, err, boom)
}

func TestRunHeadlessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, nil, HeadlessConfig{Hz: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
