// Package cell provides CellStore implementations for the content artifacts
// derived from agent outputs. Cells are append-only and ordered per session.
package cell
