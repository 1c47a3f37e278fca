package message

import (
	"fmt"
	"strconv"
	"strings"
)

// Format substitutes positional {0}-style placeholders in template with the
// given arguments. Placeholders without a matching argument are left as-is,
// as are braces that do not form a valid index.
func Format(template string, args ...any) string {
	if len(args) == 0 || !strings.ContainsRune(template, '{') {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		closing := strings.IndexByte(template[open:], '}')
		if closing < 0 {
			b.WriteString(template[i:])
			break
		}
		closing += open

		idx, err := strconv.Atoi(template[open+1 : closing])
		if err != nil || idx < 0 || idx >= len(args) {
			b.WriteString(template[i : closing+1])
			i = closing + 1
			continue
		}

		b.WriteString(template[i:open])
		b.WriteString(fmt.Sprint(args[idx]))
		i = closing + 1
	}

	return b.String()
}
