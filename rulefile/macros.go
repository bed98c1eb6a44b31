package rulefile

import "strings"

// ExpandMacros substitutes every `%{name}` reference in each rule's regex
// source with its definition from f.Macros, in place. Substitution uses
// strings.NewReplacer rather than a multi-pattern matcher library: see
// DESIGN.md / SPEC_FULL.md for why github.com/coregx/ahocorasick was
// considered and not wired here (only its construction-side API is
// visible in the retrieval pack, never the matching method surface this
// step would need).
func ExpandMacros(f *File) {
	if len(f.Macros) == 0 {
		return
	}

	pairs := make([]string, 0, len(f.Macros)*2)
	for name, body := range f.Macros {
		pairs = append(pairs, "%{"+name+"}", body)
	}
	replacer := strings.NewReplacer(pairs...)

	for i := range f.Rules {
		f.Rules[i].Regex = replacer.Replace(f.Rules[i].Regex)
	}
}
