// Package mention finds @handles in free text and resolves them to users.
package mention

import (
	"regexp"
	"strings"

	"github.com/nhle/flowstate/internal/model"
)

// handlePattern matches @Name handles (e.g., @Sam, @jamie.l).
var handlePattern = regexp.MustCompile(`(?:^|[^\w@])@([A-Za-z][\w.-]*[\w]|[A-Za-z])`)

// ExtractHandles returns the handles in text without the leading @.
// Returns a deduplicated (case-insensitive) list preserving the order of
// first occurrence.
func ExtractHandles(text string) []string {
	matches := handlePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, m := range matches {
		h := m[1]
		k := strings.ToLower(h)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, h)
	}
	return result
}

// Resolve returns the users referenced by handles in text, in handle order.
// A handle matches a user whose full name or first name equals it ignoring
// case. The author is never mentioned by their own message.
func Resolve(text string, users []model.User, authorID string) []model.User {
	handles := ExtractHandles(text)
	if len(handles) == 0 {
		return nil
	}

	var out []model.User
	picked := make(map[string]bool)
	for _, h := range handles {
		for _, u := range users {
			if u.ID == authorID || picked[u.ID] || !matches(h, u.Name) {
				continue
			}
			picked[u.ID] = true
			out = append(out, u)
		}
	}
	return out
}

func matches(handle, name string) bool {
	if strings.EqualFold(handle, strings.ReplaceAll(name, " ", "")) {
		return true
	}
	first, _, _ := strings.Cut(name, " ")
	return strings.EqualFold(handle, first)
}
