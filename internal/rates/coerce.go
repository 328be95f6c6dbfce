package rates

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Model responses usually wrap the payload in a markdown code fence, with or
// without a language tag, sometimes surrounded by prose. A tagged block wins
// over an untagged one; with no fence at all the full text is parsed as-is.
var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedRe     = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
)

// DecodeArray extracts a JSON array from loosely structured text and decodes
// it into a slice of T. An unparseable payload, a non-array payload, or an
// empty array all return an error; callers treat this as a soft failure and
// fall through to the next tier.
func DecodeArray[T any](text string) ([]T, error) {
	body := text
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		body = m[1]
	} else if m := fencedRe.FindStringSubmatch(text); m != nil {
		body = m[1]
	}
	body = strings.TrimSpace(body)

	var out []T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("decode response array: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("response array is empty")
	}
	return out, nil
}
