package lex

import "sort"

// Pattern is one entry of an operator/symbol pattern table: a sequence of
// leading-symbol runes to match, greedily, against consecutive Symbol atoms,
// and the tag produced on a full match.
type Pattern[U any] struct {
	Runes []rune
	Value U
}

// PatternTable maps the first rune of a pattern to every registered pattern
// beginning with that rune, longest-first, so a greedy scan finds the
// longest match.
type PatternTable[U any] map[rune][]Pattern[U]

// NewPatternTable builds a PatternTable from a flat pattern list, exactly as
// the language front-end registers its operator and symbol tables: each
// pattern is keyed by its first rune, and patterns sharing a key are sorted
// longest-first so the caller can greedily take the first one that matches.
func NewPatternTable[U any](patterns []Pattern[U]) PatternTable[U] {
	table := make(PatternTable[U])
	for _, p := range patterns {
		if len(p.Runes) == 0 {
			continue
		}
		key := p.Runes[0]
		table[key] = append(table[key], p)
	}
	for key := range table {
		list := table[key]
		sort.SliceStable(list, func(i, j int) bool {
			return len(list[i].Runes) > len(list[j].Runes)
		})
		table[key] = list
	}
	return table
}

// Match attempts to match the longest registered pattern starting at
// atoms[i], where atoms[i] is a Symbol atom. It returns the matched value,
// the number of atoms consumed, and whether a pattern matched.
func (t PatternTable[U]) Match(atoms []Atom, i int) (value U, consumed int, ok bool) {
	if i >= len(atoms) || atoms[i].Kind != AtomSymbol {
		return value, 0, false
	}
	candidates, found := t[atoms[i].Char]
	if !found {
		return value, 0, false
	}

	for _, cand := range candidates {
		if matchesSymbolRun(atoms, i, cand.Runes) {
			return cand.Value, len(cand.Runes), true
		}
	}
	return value, 0, false
}

func matchesSymbolRun(atoms []Atom, i int, runes []rune) bool {
	if i+len(runes) > len(atoms) {
		return false
	}
	for k, r := range runes {
		a := atoms[i+k]
		if a.Kind != AtomSymbol || a.Char != r {
			return false
		}
	}
	return true
}
