package watcher

import (
	"context"
	"os"
	"time"
)

// PollStabilizer waits for a file to finish writing by polling its size.
// Recording apps copy files into the watch folder; transcribing a half-copied
// file yields garbage, so an item is only emitted once its size has been
// unchanged for Checks consecutive polls.
type PollStabilizer struct {
	Interval time.Duration
	Checks   int
}

func NewPollStabilizer(interval time.Duration, checks int) *PollStabilizer {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if checks <= 0 {
		checks = 2
	}
	return &PollStabilizer{Interval: interval, Checks: checks}
}

// WaitForStable blocks until the file size stays constant for the configured
// number of consecutive checks, the file disappears, or ctx is cancelled.
func (s *PollStabilizer) WaitForStable(ctx context.Context, path string) error {
	var lastSize int64 = -1
	stableCount := 0

	for stableCount < s.Checks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Interval):
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if info.Size() == lastSize {
			stableCount++
		} else {
			stableCount = 0
			lastSize = info.Size()
		}
	}

	return nil
}
