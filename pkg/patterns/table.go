package patterns

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arthur-debert/maidsweep/pkg/errors"
)

// Table is a compiled pattern document. It is built once at startup and
// only read afterwards, so it is safe for concurrent use without locks.
type Table struct {
	typical  []typicalRule
	special  []SpecialRule
	byExt    map[string][]string
	synonyms map[string][]string
}

type typicalRule struct {
	tag      string
	patterns []*regexp.Regexp
}

// SpecialRule tags entries whose name matches Pattern with Tags
type SpecialRule struct {
	Tags    []string
	Pattern *regexp.Regexp
}

// Compile validates a document and builds its lookup structures. Typical
// file tags and the tags of each extension are kept sorted by name so
// that classification is deterministic.
func Compile(doc *Document) (*Table, error) {
	if doc == nil {
		doc = &Document{}
	}

	t := &Table{
		byExt:    make(map[string][]string),
		synonyms: make(map[string][]string),
	}

	for _, tag := range sortedKeys(doc.TypicalFiles) {
		rule := typicalRule{tag: tag}
		for _, expr := range doc.TypicalFiles[tag] {
			re, err := compileExpr(expr, "typical_files."+tag)
			if err != nil {
				return nil, err
			}
			rule.patterns = append(rule.patterns, re)
		}
		t.typical = append(t.typical, rule)
	}

	for i, f := range doc.Filenames {
		if len(f.Tags) == 0 {
			return nil, errors.Newf(errors.ErrPatternsInvalid,
				"filenames rule %d (%q) has no tags", i, f.Pattern)
		}
		re, err := compileExpr(f.Pattern, "filenames")
		if err != nil {
			return nil, err
		}
		t.special = append(t.special, SpecialRule{
			Tags:    append([]string(nil), f.Tags...),
			Pattern: re,
		})
	}

	for _, tag := range sortedKeys(doc.Extensions) {
		seen := make(map[string]bool)
		for _, ext := range doc.Extensions[tag] {
			ext = strings.ToLower(strings.TrimPrefix(ext, "."))
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			t.byExt[ext] = append(t.byExt[ext], tag)
		}
	}

	for alias, canon := range doc.Synonyms {
		t.synonyms[alias] = dedupSorted(canon)
	}

	return t, nil
}

func compileExpr(expr, section string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternsInvalid,
			"invalid pattern %q in %s", expr, section).WithDetail("section", section)
	}
	return re, nil
}

// MatchTypical reports the first typical-file tag, in tag name order,
// with a pattern matching name.
func (t *Table) MatchTypical(name string) (string, bool) {
	for _, rule := range t.typical {
		for _, re := range rule.patterns {
			if re.MatchString(name) {
				return rule.tag, true
			}
		}
	}
	return "", false
}

// MatchSpecial returns the tags of the first filename rule matching name.
func (t *Table) MatchSpecial(name string) ([]string, bool) {
	for _, rule := range t.special {
		if rule.Pattern.MatchString(name) {
			return append([]string(nil), rule.Tags...), true
		}
	}
	return nil, false
}

// ExtensionTags returns every tag whose extension set contains ext.
// Lookup is case-insensitive.
func (t *Table) ExtensionTags(ext string) []string {
	tags := t.byExt[strings.ToLower(ext)]
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}

// ExpandTags replaces every alias by its canonical tags. Tags that are not
// aliases are kept as-is. The result is deduplicated and sorted.
func (t *Table) ExpandTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		if canon, ok := t.synonyms[tag]; ok {
			out = append(out, canon...)
			continue
		}
		out = append(out, tag)
	}
	return dedupSorted(out)
}

// SpecialRules returns the ordered filename rules
func (t *Table) SpecialRules() []SpecialRule {
	return append([]SpecialRule(nil), t.special...)
}

// TypicalTags returns the typical-file tags in matching order
func (t *Table) TypicalTags() []string {
	tags := make([]string, len(t.typical))
	for i, rule := range t.typical {
		tags[i] = rule.tag
	}
	return tags
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
