package ruledef

import "strings"

// expandAliases replaces every "$name" reference in text with a
// parenthesized copy of the named alias's own source pattern, repeating
// until no "$" remains. It is a simple bounded-iteration macro expander:
// aliases may reference earlier aliases, but not themselves, directly or
// transitively.
func expandAliases(text string, aliases map[string]string) (string, error) {
	const maxPasses = 64
	for pass := 0; pass < maxPasses; pass++ {
		if !strings.ContainsRune(text, '$') {
			return text, nil
		}
		expanded, name, ok := expandOnce(text, aliases)
		if !ok {
			return "", &ConflictError{Kind: ConflictAliasCycle, Name: name}
		}
		text = expanded
	}
	return "", &ConflictError{Kind: ConflictAliasCycle}
}

func expandOnce(text string, aliases map[string]string) (string, string, bool) {
	i := strings.IndexByte(text, '$')
	if i < 0 {
		return text, "", true
	}
	j := i + 1
	for j < len(text) && isIdentByte(text[j]) {
		j++
	}
	name := text[i+1 : j]
	pattern, ok := aliases[name]
	if !ok {
		return "", name, false
	}
	return text[:i] + "(" + pattern + ")" + text[j:], name, true
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
