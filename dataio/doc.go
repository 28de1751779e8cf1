// Package dataio reads spectrometer exports into [spectra.Dataset] values and
// writes datasets, baselines and phases back as CSV tables.
//
// Three export formats are understood: Raman (CSV with a "Raman Shift" /
// "Dark Subtracted #1" header block), IR (two-column CSV without header) and
// UV-Vis (semicolon-separated *.TXT with five fields per data line). Rows
// whose position or intensity cannot be parsed are dropped.
//
// A directory of exports is read in natural file order and folded into a
// (positions × time points) matrix, averaging repeated acquisitions.
package dataio
