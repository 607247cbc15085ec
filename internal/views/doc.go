// Package views holds the per-view state and pure render functions for the
// upload form, ingest history, log viewer, and DB explorer. Each RenderX
// function maps (data | error) to a small render tree with no terminal
// dependencies; package ui turns those trees into styled strings.
package views
