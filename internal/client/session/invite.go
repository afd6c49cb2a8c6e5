package session

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseInvite extracts the table id from an invite reference. Accepted
// forms are a bare id ("7"), a query ("?tableId=7") and any URL carrying a
// tableId parameter, such as "poker://join?tableId=7".
func ParseInvite(ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, ErrInvalidInvite
	}

	raw := ref
	if !isDigits(ref) {
		u, err := url.Parse(ref)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInvite, err)
		}
		raw = u.Query().Get("tableId")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: no table id in %q", ErrInvalidInvite, ref)
	}
	return id, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
