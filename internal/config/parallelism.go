package config

import "runtime"

// Parallelism resolution chain (highest priority first):
//   1. CLI flag (--parallel)
//   2. Environment variable (LESSONS_PARALLEL)
//   3. Hardware estimation (this file), used when the value is 0

// ApplyAdaptiveParallelism replaces a zero Parallel value with an estimate
// derived from the CPU count and the number of lessons that will run.
// Explicit values are left untouched.
func ApplyAdaptiveParallelism(cfg AppConfig, lessonCount int) AppConfig {
	if cfg.Parallel == 0 {
		cfg.Parallel = EstimateParallelism(runtime.NumCPU(), lessonCount)
	}
	return cfg
}

// EstimateParallelism returns how many lessons may run at once. Lessons are
// tiny, so there is no point in exceeding either the core count or the
// number of lessons. The result is never below 1.
func EstimateParallelism(numCPU, lessonCount int) int {
	p := numCPU
	if lessonCount < p {
		p = lessonCount
	}
	if p < 1 {
		return 1
	}
	return p
}
