// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths in the lineutils codebase:
//   - offset parsing
//   - the two-pass line engine and the byte seeker
//   - CUE configuration loading
//   - end-to-end tail and grep runs through the utility registry
//
// To generate a profile, run:
//
//	go test -run='^$' -bench=. -cpuprofile=default.pgo ./internal/benchmark
package benchmark
