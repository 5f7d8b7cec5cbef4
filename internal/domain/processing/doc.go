// Package processing defines the processing area: named services that turn a
// stored resource or an uploaded data transaction into a downloadable result.
package processing
