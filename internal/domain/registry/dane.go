package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDANECode converts a dotted DANE code ("05.001") into its integer
// form (5001). The dots are presentation separators, not decimal points.
func ParseDANECode(raw string) (int, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	if normalized == "" {
		return 0, fmt.Errorf("empty DANE code %q", raw)
	}

	code, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, fmt.Errorf("non-numeric DANE code %q", raw)
	}
	return code, nil
}
