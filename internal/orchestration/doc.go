// Package orchestration runs lessons concurrently and aggregates their
// results. It decouples execution from presentation via the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
