// Package dsp holds the numerical building blocks of the gait pipeline.
//
// Responsibilities: trend removal, zero-phase Butterworth filtering in
// second-order sections, trapezoidal integration, the gaus1 continuous
// wavelet transform, peak picking, dominant frequency estimation and
// normalized autocovariance.
//
// Every function is pure: inputs are never modified and outputs are freshly
// allocated. Results are bit-for-bit reproducible for identical inputs.
//
// Numerical conventions follow the SciPy/PyWavelets routines the gait
// literature was validated against (sosfiltfilt odd padding, pywt.cwt
// trimming, find_peaks plateau handling) so event indices line up with
// published reference data.
package dsp
