package types

import "strings"

// TagSet is an ordered list of tags. Duplicates are allowed and the order
// is significant: the first tag picks copy/move destinations and the first
// three are addressable from exec templates.
type TagSet []string

// First returns the first tag or "" for an empty set.
func (t TagSet) First() string {
	return t.At(0)
}

// At returns the tag at position i or "" when out of range.
func (t TagSet) At(i int) string {
	if i < 0 || i >= len(t) {
		return ""
	}
	return t[i]
}

// Contains reports whether tag is in the set.
func (t TagSet) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// ContainsAny reports whether the set shares at least one tag with tags.
func (t TagSet) ContainsAny(tags []string) bool {
	for _, tag := range tags {
		if t.Contains(tag) {
			return true
		}
	}
	return false
}

// String renders the set as "#a#b", the form used by the {0} placeholder.
func (t TagSet) String() string {
	if len(t) == 0 {
		return "#"
	}
	return "#" + strings.Join(t, "#")
}
