package profile

import (
	"strings"
	"unicode"
)

// Canonical club keys the advice engine asks for.
const (
	Driver    = "driver"
	SevenIron = "7 iron"
)

// AliasTable maps a normalized spelling to its canonical club key.
type AliasTable map[string]string

// DefaultAliases covers the spellings players type and launch monitors
// export for the two clubs advice is computed for.
func DefaultAliases() AliasTable {
	t := AliasTable{}
	t.Add(Driver, "driver", "d", "drv", "1w", "1 wood")
	t.Add(SevenIron, "7 iron", "7i", "7-iron", "seven iron", "7iron")
	return t
}

// Add registers aliases for a canonical key. The key is always its own alias.
func (t AliasTable) Add(canonical string, aliases ...string) {
	key := Normalize(canonical)
	t[key] = key
	for _, a := range aliases {
		t[Normalize(a)] = key
	}
}

// Canonical resolves any spelling to its canonical key. Unknown names
// resolve to their own normalized form, so "PW" still matches "pw".
func (t AliasTable) Canonical(name string) string {
	n := Normalize(name)
	if key, ok := t[n]; ok {
		return key
	}
	return n
}

// Normalize lower-cases a club name, turns dashes and underscores into
// spaces and collapses runs of whitespace.
func Normalize(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return unicode.ToLower(r)
	}, name)
	return strings.Join(strings.Fields(mapped), " ")
}
