package utils

import "strconv"

// HumanNumber formats an integer with comma digit grouping, e.g. 1234567
// becomes "1,234,567"
func HumanNumber(value int) string {
	s := strconv.Itoa(value)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
