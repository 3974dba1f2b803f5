package pipeline

import "regexp"

// A placeholder tag is any substring strictly between '<' and the nearest
// following '>'. Matching is non-greedy and non-nested.
var tagPattern = regexp.MustCompile(`<([^>]*)>`)

// ParseAttributes returns every placeholder tag of template in order of
// first appearance. Duplicates are preserved positionally; each occurrence
// is extracted independently. Total: empty input yields an empty slice.
func ParseAttributes(template string) []string {
	matches := tagPattern.FindAllStringSubmatch(template, -1)
	attributes := make([]string, 0, len(matches))
	for _, m := range matches {
		attributes = append(attributes, m[1])
	}
	return attributes
}
