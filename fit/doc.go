// Package fit implements the two-stage fitting core: least-squares selection
// of the best candidate function per training signal, and deviation-tolerance
// classification of test points against the selected candidates.
//
// # Selection
//
// Select compares every training signal against every candidate column on a
// shared grid and keeps, per signal, the candidate with the smallest mean
// squared error. Alongside the winning candidate it records the maximum
// absolute deviation observed between signal and candidate — the bound that
// later gates classification — plus RMSE and R² as fit-quality diagnostics.
//
// # Classification
//
// Classify assigns each test point to at most one selected candidate: the one
// with the smallest deviation at the point's x-position, provided that
// deviation does not exceed √2 times the candidate's stored selection-time
// bound. Points whose x is not on the grid, or that fall outside every
// tolerance, are reported with explicit markers instead of failing the batch.
//
// Both operations are pure batch transforms: no I/O, no retained state, no
// mutation of inputs, and bit-identical output for identical input — with or
// without the optional parallelism.
package fit
