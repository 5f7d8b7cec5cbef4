// Package stats defines usage statistics of the repository: per-resource
// actions, search queries and metadata element usage.
package stats
