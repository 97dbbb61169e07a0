package assistant

import "strings"

// ParseInput splits a line on whitespace into a lower-cased command word and
// its arguments. A blank line yields an empty command.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
