package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationPattern = regexp.MustCompile(`^(\d+)\s*months?$`)

// ParseDurationMonths converts a free-text duration like "4 months" into a
// month count. Input is validated at registration time so that milestone
// generation never has to guess; unparseable input is rejected rather than
// defaulted.
func ParseDurationMonths(s string) (int, error) {
	m := durationPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q: expected a month count like \"4 months\"", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid duration %q: month count must be at least 1", s)
	}
	return n, nil
}
