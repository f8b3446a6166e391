package chrome

import "strings"

// ScrollTarget resolves the section a data-scroll trigger or in-page link
// points at. A bare "#" or an empty value does not scroll.
func ScrollTarget(selector string) (string, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == "#" {
		return "", false
	}
	return selector, true
}
