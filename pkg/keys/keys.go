package keys

import (
	"fmt"
	"strings"
)

// Separator joins the parts of a composite node key
const Separator = "=#=#="

// Create builds a composite key from its parts, e.g. (type, name)
func Create(parts ...string) string {
	return strings.Join(parts, Separator)
}

// Split reverses Create
func Split(key string) []string {
	return strings.Split(key, Separator)
}

// Type returns the first part of a (type, name) key
func Type(key string) string {
	return Split(key)[0]
}

// Name returns the second part of a (type, name) key, or the key itself
// when it has a single part
func Name(key string) string {
	parts := Split(key)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[1]
}

// DisplayLabel formats a node key as "<name> [<type>]" with the type
// truncated to chars characters
func DisplayLabel(key string, chars int) string {
	nodeType := Type(key)
	runes := []rune(nodeType)
	if chars >= 0 && len(runes) > chars {
		nodeType = string(runes[:chars])
	}
	return fmt.Sprintf("%s [%s]", Name(key), nodeType)
}
