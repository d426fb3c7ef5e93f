// Package analysis inspects a finished run for oscillation.
//
//   - [Spectrum]: power spectrum of the depth error via go-dsp
//   - [DominantFrequency]: strongest non-DC component
//   - [ErrorPhasePortrait]: error against error rate, with an ASCII renderer
//
// A well-damped run has most of its power near zero frequency and a
// portrait that spirals into the origin.
package analysis
