package files

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count for display: "0 Bytes", "1 KB", "1.5 KB",
// "2.37 MB". Values are rounded to at most two decimals with trailing zeros
// trimmed. Anything at or beyond 1024 TB saturates to a fixed label instead
// of indexing past the unit table.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const unit = 1024.0

	value := float64(bytes)
	exp := 0
	for value >= unit {
		value /= unit
		exp++
	}

	if exp >= len(sizeUnits) {
		return "> 1024 TB"
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[exp]
}
