package config

import "runtime"

// Worker count resolution chain (highest priority first):
//  1. CLI flag (--workers)
//  2. Environment variable (BITCALC_WORKERS)
//  3. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills in configuration values that are still at
// their zero default with hardware-derived estimates, preserving any
// user-specified overrides.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateStressWorkers()
	}
	return cfg
}

// EstimateStressWorkers picks a stress worker count from the core count.
// The workload is CPU bound with almost no shared state, so one worker per
// core is close to optimal; very high core counts are capped to keep the
// per-worker progress reporting readable.
func EstimateStressWorkers() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 16:
		return numCPU - 1 // leave a core for the progress UI
	default:
		return 16
	}
}
