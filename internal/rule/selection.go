package rule

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// MaxSelection caps how many indices a single range may expand to.
const MaxSelection = 4096

// ParseSelection expands a rule list such as "100 102 120-130 random" into
// individual index strings accepted by Parse. Ranges exclude their upper
// end, so "5-5" and "9-3" select nothing. Each field may itself hold several space separated items.
func ParseSelection(fields []string) ([]string, error) {
	var out []string
	for _, field := range fields {
		for _, item := range strings.Fields(field) {
			switch {
			case strings.EqualFold(item, RandomKeyword):
				out = append(out, RandomKeyword)
			case strings.Contains(item, "-"):
				lo, hi, ok := strings.Cut(item, "-")
				from, errLo := strconv.ParseUint(lo, 10, 64)
				to, errHi := strconv.ParseUint(hi, 10, 64)
				if !ok || errLo != nil || errHi != nil {
					return nil, fmt.Errorf("rule range %q: %w", item, ErrInvalidIndex)
				}
				if to <= from {
					continue
				}
				if to-from > MaxSelection {
					return nil, fmt.Errorf("rule range %q spans more than %d rules: %w", item, MaxSelection, ErrInvalidIndex)
				}
				for i := from; i < to; i++ {
					out = append(out, strconv.FormatUint(i, 10))
				}
			default:
				index, ok := new(big.Int).SetString(item, 10)
				if !ok || index.Sign() < 0 {
					return nil, fmt.Errorf("rule %q: %w", item, ErrInvalidIndex)
				}
				out = append(out, index.String())
			}
		}
	}
	return out, nil
}
