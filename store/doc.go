// Package store persists fitmatch inputs and outputs to SQLite.
//
// One database holds five tables: training_data and ideal_functions mirror
// the loaded frames (x plus one REAL column per series), best_fits holds the
// selection outcome per training signal, test_data holds one row per
// classified point, and runs accumulates one summary row per pipeline run.
//
// Frame and result tables are dropped and recreated on every save, so a
// database always reflects the latest run; the runs table is append-only.
//
// SQLite cannot represent NaN: NaN values are stored as NULL and load back
// as NaN. Unmatched test points use that deliberately, persisting delta_y
// and ideal_func_no as NULL.
package store
