// Package importer loads a Goodreads-style books CSV into the catalog.
//
// Rows are repaired before insertion: an ISBN already seen earlier in the
// file is incremented until it is unique, negative publication years are
// made positive, an empty original title falls back to the title, and the
// rating aggregates are recomputed from the star buckets. Rows that still
// fail validation are reported as warnings and skipped.
package importer
