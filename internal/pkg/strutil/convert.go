// Package strutil holds small string conversion helpers used by request handlers.
package strutil

import "strconv"

// ConvertToInt parses s as a base-10 int, returning 0 when s is not a number
func ConvertToInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ConvertToIntOrDefault parses s as a base-10 int, returning def when s is empty or not a number
func ConvertToIntOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
