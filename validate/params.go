package validate

import "regexp"

var paramPattern = regexp.MustCompile(`\$([0-9]+)`)

// MaxParamOrdinal scans sql for `$N` placeholders and returns the
// largest N found, or 0 if the query has none. A code-generation front
// end uses this to size the parameter list it binds before calling the
// query — this module only needs to report the count, not bind values.
func MaxParamOrdinal(sql string) int {
	max := 0
	for _, m := range paramPattern.FindAllStringSubmatch(sql, -1) {
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
		}
		if n > max {
			max = n
		}
	}
	return max
}
