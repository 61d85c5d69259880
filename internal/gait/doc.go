// Package gait extracts gait events and spatiotemporal gait metrics from a
// lumbar-worn accelerometer.
//
// The pipeline runs strictly forward:
//
//	classifier -> SegmentBouts -> (per bout) event detection -> BuildStrides
//	-> cycle metrics -> ComputeParams -> Result
//
// A Classifier labels every sample as walking or not. SegmentBouts turns the
// labels into bouts. For each bout the vertical acceleration is detrended,
// low-pass filtered and integrated to velocity; a two-stage gaus1 wavelet
// transform locates initial contacts (IC) and final contacts (FC). Strides
// pair each IC with the next two FCs subject to loading and stance time
// limits. Timing, spatial, regularity and asymmetry parameters are then
// computed within each bout, never across bout boundaries.
//
// Results are grouped per bout (BoutResult); Result.Columns flattens them
// into the named-column table used by storage and the API.
//
// The pipeline is single-threaded, deterministic, and holds no state between
// Predict calls.
package gait
