// Package batch expands a starting identifier into an ordered sequence of
// label items by incrementing its trailing numeric suffix.
package batch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrNoNumericSuffix is returned when an identifier does not end in digits
// and therefore cannot be incremented.
var ErrNoNumericSuffix = errors.New("identifier does not end in a number")

// MaxCount caps a single expansion. Larger batches than a few label sheets
// are outside what the tool is meant for, and the cap keeps a single
// request from allocating an arbitrarily large item list.
const MaxCount = 1000

// Item is one entry in a batch. Items stay editable after generation; the
// store package persists them between invocations.
type Item struct {
	ID    int64  `json:"id,omitempty"`
	Data  string `json:"data"`
	Name  string `json:"name"`
	Price string `json:"price,omitempty"`
}

var trailingDigits = regexp.MustCompile(`^(.*?)(\d+)$`)

// Increment returns s with its trailing digit run incremented by one,
// zero-padded to the original suffix width. The width grows when the
// incremented value no longer fits ("099" becomes "100", never "000").
// An empty string increments to "1".
func Increment(s string) (string, error) {
	if s == "" {
		return "1", nil
	}
	prefix, suffix, width, err := splitSuffix(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, width, suffix+1), nil
}

// Expand produces n items starting at start, with the i-th identifier equal
// to the starting suffix plus i and the i-th name equal to namePrefix
// followed by the 1-based index. The price is applied to every item.
// n must be between 1 and MaxCount.
func Expand(start, namePrefix, price string, n int) ([]Item, error) {
	if n < 1 || n > MaxCount {
		return nil, fmt.Errorf("batch count must be between 1 and %d, got %d", MaxCount, n)
	}
	prefix, suffix, width, err := splitSuffix(start)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		name := strconv.Itoa(i + 1)
		if namePrefix != "" {
			name = fmt.Sprintf("%s %d", namePrefix, i+1)
		}
		items = append(items, Item{
			Data:  fmt.Sprintf("%s%0*d", prefix, width, suffix+uint64(i)),
			Name:  name,
			Price: price,
		})
	}
	return items, nil
}

// splitSuffix separates the trailing digit run from the rest of the
// identifier and parses it, preserving its width for zero-padding.
func splitSuffix(s string) (prefix string, suffix uint64, width int, err error) {
	m := trailingDigits.FindStringSubmatch(s)
	if m == nil {
		return "", 0, 0, fmt.Errorf("identifier %q: %w", s, ErrNoNumericSuffix)
	}
	suffix, err = strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("identifier %q: suffix out of range: %w", s, err)
	}
	return m[1], suffix, len(m[2]), nil
}
