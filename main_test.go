package main

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunBesideWaitsForBoot(t *testing.T) {
	release := make(chan struct{})
	var booted atomic.Bool
	boot := func() {
		<-release
		booted.Store(true)
	}
	closed := errors.New("window closed")

	ret := make(chan error, 1)
	go func() { ret <- runBeside(boot, func() error { return closed }) }()

	select {
	case <-ret:
		t.Fatalf("runBeside returned while boot was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.ErrorIs(t, <-ret, closed)
	assert.True(t, booted.Load())
}
