package parser

import "runtime"

// optimalPoolSize returns min(max(runtime.NumCPU()*2, 4), 32).
//
// Pooling exists so an embedding server can parse several documents at
// once (e.g. loading a library's files in parallel at startup) without
// each parse blocking on a single shared *ts.Parser.
func optimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// poolSizeWithOverride returns override if positive, else optimalPoolSize().
func poolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return optimalPoolSize()
}
