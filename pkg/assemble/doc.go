// Package assemble turns an ordered track list into a finished
// double-sided tile document.
//
// Assembly runs in two phases:
//
//  1. Resolve: every code image is generated concurrently into a slice
//     indexed by track position. Each request has its own timeout; a
//     failed or timed-out request leaves a nil image and is logged. Only
//     cancellation of the caller's context aborts the phase.
//  2. Emit: a state machine walks the page groups from [layout.Partition],
//     alternating between the front page and the back page of each group,
//     and draws every tile synchronously from the resolved images.
//
// The canvas is only touched in phase 2, from a single goroutine. A
// document is written out only after every tile is drawn, so callers never
// see a partially rendered artifact.
package assemble
