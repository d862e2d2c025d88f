package cache

import "fmt"

// ReportKey is the cache key for one user's monthly attendance payload.
func ReportKey(userID, year, month int) string {
	return fmt.Sprintf("attendance:%d:%d:%d", userID, year, month)
}
