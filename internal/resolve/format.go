package resolve

import "fmt"

// FormatOhms renders a resistance for the reader's four-character display,
// scaling into k or M above the respective thresholds.
func FormatOhms(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.2fk", v/1_000)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
