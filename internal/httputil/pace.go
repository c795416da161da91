// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"time"
)

// Pacer enforces a minimum delay between successive outbound requests.
// The delay is measured from issue to issue: Wait stamps the moment it
// returns, and the next Wait sleeps only for the portion of the minimum
// that has not already elapsed. Time spent handling a slow response
// therefore counts against the pacing budget instead of drifting it.
//
// A Pacer is owned by one batch run and is not safe for concurrent use;
// the pipeline issues queries strictly sequentially.
type Pacer struct {
	min  time.Duration
	last time.Time
}

// NewPacer returns a Pacer enforcing min between successive Wait returns.
// A non-positive min disables pacing.
func NewPacer(min time.Duration) *Pacer {
	return &Pacer{min: min}
}

// Wait blocks until at least the configured minimum has elapsed since the
// previous Wait returned. The first call never sleeps. If ctx is cancelled
// during the wait, Wait returns ctx.Err() without stamping an issue time.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.min > 0 && !p.last.IsZero() {
		if remaining := p.min - time.Since(p.last); remaining > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(remaining):
			}
		}
	}
	p.last = time.Now()
	return nil
}
