package cart

import "strings"

// Fingerprint is the line identity: product id, '|', then the sorted selected option keys joined by ','.
func Fingerprint(p Product) string {
	return p.ID.String() + "|" + strings.Join(p.SelectedKeys(), ",")
}
