// Package pyrmatch implements coarse-to-fine, rotation-aware grayscale
// template matching over Gaussian image pyramids using ZNCC or SSD
// scoring with a deterministic beam search.
//
// Most callers should use domain/match.Matcher directly, or the
// convenience functions in this package for a one-shot match against
// files on disk. The cmd/pyrmatch binary wraps this package in a CLI.
package pyrmatch
