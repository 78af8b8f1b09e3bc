// Package advice turns free-text model replies into bounded bullet lists.
package advice

import "strings"

// MaxItems bounds the number of advice entries kept per threat.
const MaxItems = 5

// Default is substituted when a reply yields no usable lines.
var Default = []string{
	"Stay informed about the situation",
	"Follow local authorities' guidance",
	"Avoid the affected area if possible",
}

// Parse splits text into lines, strips bullet dashes and surrounding
// whitespace, drops blank lines and keeps at most MaxItems entries.
func Parse(text string) []string {
	items := make([]string, 0, MaxItems)
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(strings.Trim(line, "- "))
		if item == "" {
			continue
		}
		items = append(items, item)
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

// OrDefault returns items, or a copy of Default when items is empty.
func OrDefault(items []string) []string {
	if len(items) > 0 {
		return items
	}
	out := make([]string, len(Default))
	copy(out, Default)
	return out
}
