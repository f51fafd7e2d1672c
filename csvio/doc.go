// Package csvio loads fitmatch input tables from CSV and exports
// classification results back to CSV.
//
// Tables are header-first: the first column is the shared x grid, remaining
// columns are named series. Header names are lowercased on read, so "X" and
// "Y1" address the same columns as "x" and "y1". Files ending in .gz are
// read and written gzip-compressed.
//
// The package is a collaborator around the fit core: it imports frame and
// fit, never the other way around.
package csvio
