// Package match finds vocabulary terms inside free-text job descriptions.
//
// The index is an Aho–Corasick automaton: a prefix trie over the lowercased
// vocabulary with failure links, so a description is scanned in a single pass
// regardless of how many terms the vocabulary holds. A candidate hit is only
// accepted at a word boundary: the rune before the match start and the rune
// after the match end (when they exist) must not be alphanumeric. That is
// what keeps "sql" from matching inside "mysql".
package match

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type node struct {
	children map[rune]*node
	fail     *node
	// terms ending at this node, or reachable via failure links;
	// indexes into SkillIndex.terms
	output []int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// SkillIndex is built once from a vocabulary and immutable afterwards, so it
// is safe to share read-only across concurrent fetch tasks.
type SkillIndex struct {
	root    *node
	terms   []string // canonical casing, as given in the vocabulary
	lengths []int    // rune length of each lowercased term
}

// NewSkillIndex builds the automaton. Blank and duplicate terms (after
// lowercasing) are dropped.
func NewSkillIndex(vocabulary []string) *SkillIndex {
	idx := &SkillIndex{root: newNode()}

	seen := make(map[string]bool, len(vocabulary))
	for _, term := range vocabulary {
		key := strings.ToLower(strings.TrimSpace(term))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		idx.insert(key, strings.TrimSpace(term))
	}

	idx.buildFailureLinks()
	return idx
}

// Size reports how many distinct terms the index holds.
func (idx *SkillIndex) Size() int { return len(idx.terms) }

func (idx *SkillIndex) insert(key, canonical string) {
	n := idx.root
	for _, r := range key {
		child := n.children[r]
		if child == nil {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}
	idx.terms = append(idx.terms, canonical)
	idx.lengths = append(idx.lengths, utf8.RuneCountInString(key))
	n.output = append(n.output, len(idx.terms)-1)
}

// buildFailureLinks wires the automaton breadth-first. A node's failure link
// points at the longest proper suffix of its path that is also a path in the
// trie; outputs of the failure target are folded into the node so every
// match ending at a position is reported in one step.
func (idx *SkillIndex) buildFailureLinks() {
	var queue []*node
	for _, child := range idx.root.children {
		child.fail = idx.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for r, child := range n.children {
			f := n.fail
			for f != idx.root && f.children[r] == nil {
				f = f.fail
			}
			if next := f.children[r]; next != nil && next != child {
				child.fail = next
			} else {
				child.fail = idx.root
			}
			child.output = append(child.output, child.fail.output...)
			queue = append(queue, child)
		}
	}
}

// Search returns every vocabulary term present in text at a word boundary,
// case-insensitively. The result is a set: each term appears once, in sorted
// canonical order, so the same (vocabulary, text) pair always produces the
// same slice.
func (idx *SkillIndex) Search(text string) []string {
	runes := []rune(strings.ToLower(text))

	var found map[int]bool
	n := idx.root
	for i, r := range runes {
		for n != idx.root && n.children[r] == nil {
			n = n.fail
		}
		if next := n.children[r]; next != nil {
			n = next
		}
		for _, t := range n.output {
			start := i - idx.lengths[t] + 1
			if !wordBoundary(runes, start, i) {
				continue
			}
			if found == nil {
				found = make(map[int]bool)
			}
			found[t] = true
		}
	}

	out := make([]string, 0, len(found))
	for t := range found {
		out = append(out, idx.terms[t])
	}
	sort.Strings(out)
	return out
}

// wordBoundary reports whether the match spanning runes[start..end] is not
// embedded inside a larger alphanumeric token.
func wordBoundary(runes []rune, start, end int) bool {
	if start > 0 && isAlnum(runes[start-1]) {
		return false
	}
	if end+1 < len(runes) && isAlnum(runes[end+1]) {
		return false
	}
	return true
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
