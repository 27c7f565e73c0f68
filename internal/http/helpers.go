package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// generateRequestID returns a random hex ID for request correlation.
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}

// formatFileSize renders a byte count in human units for log lines.
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMG"[exp])
}
