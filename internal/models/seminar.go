package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxDescriptionLength is the maximum number of characters in a seminar description.
const MaxDescriptionLength = 1000

// NoID marks a seminar whose id was not supplied to the creation form.
const NoID ID = 0

// ID identifies a seminar in the remote store. The store may echo ids back as
// JSON strings ("7") or numbers (7); both decode to the same value.
type ID int

// UnmarshalJSON accepts a JSON number or a numeric string.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = NoID
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("invalid seminar id %s", b)
	}
	*id = ID(n)
	return nil
}

// String returns the id as it appears in store URLs.
func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// ParseID parses a decimal seminar id.
func ParseID(s string) (ID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return NoID, fmt.Errorf("invalid seminar id %q", s)
	}
	return ID(n), nil
}

// Seminar is a scheduled seminar as kept by the remote store.
// Date is in display format (DD.MM.YYYY).
type Seminar struct {
	ID          ID     `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Photo       string `json:"photo"`
}

// NextID returns one more than the largest id in list (1 for an empty list).
func NextID(list []Seminar) ID {
	var top ID
	for _, s := range list {
		if s.ID > top {
			top = s.ID
		}
	}
	return top + 1
}

// DisplayDate converts an input-format date (YYYY-MM-DD) to display format (DD.MM.YYYY).
func DisplayDate(input string) string {
	if input == "" {
		return ""
	}
	return reverseJoin(strings.Split(input, "-"), ".")
}

// InputDate converts a display-format date (DD.MM.YYYY) to input format
// (YYYY-MM-DD). Values without a dot are returned unchanged.
func InputDate(display string) string {
	if !strings.Contains(display, ".") {
		return display
	}
	return reverseJoin(strings.Split(display, "."), "-")
}

func reverseJoin(parts []string, sep string) string {
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, sep)
}
