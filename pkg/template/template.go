// Package template renders exec command templates. Placeholders in each
// argument are replaced with parts of the dispatched path and its tags,
// then the argument is escaped and double-quoted for the shell. Arguments
// that are exactly a shell operator are passed through untouched so that
// a template can describe a pipeline.
//
// Placeholders, in matching precedence:
//
//	{1} {2} {3}  first, second, third tag ("" when absent)
//	{0}          all tags as "#tag1#tag2"
//	{.}          path without extension
//	{/.}         basename without extension
//	{//}         parent directory
//	{/}          basename
//	{}           full path
package template

import (
	"strings"

	"github.com/arthur-debert/maidsweep/pkg/types"
)

var shellOperators = map[string]bool{
	"|":  true,
	"&":  true,
	"&&": true,
	"<":  true,
	">":  true,
	">>": true,
	"<<": true,
}

// IsShellOperator reports whether arg is passed through unquoted
func IsShellOperator(arg string) bool {
	return shellOperators[arg]
}

// Render builds the single command line handed to the shell
func Render(args []string, path string, tags types.TagSet) string {
	v := newValues(path, tags)
	rendered := make([]string, len(args))
	for i, arg := range args {
		rendered[i] = v.render(arg)
	}
	return strings.Join(rendered, " ")
}

// RenderArg renders one template argument
func RenderArg(arg, path string, tags types.TagSet) string {
	return newValues(path, tags).render(arg)
}

type placeholder struct {
	token string
	value func(*values) string
}

// Order matters: more specific tokens are tried first.
var placeholders = []placeholder{
	{"{1}", func(v *values) string { return v.tags.At(0) }},
	{"{2}", func(v *values) string { return v.tags.At(1) }},
	{"{3}", func(v *values) string { return v.tags.At(2) }},
	{"{0}", func(v *values) string { return v.tags.String() }},
	{"{.}", func(v *values) string { return types.TrimExt(v.path) }},
	{"{/.}", func(v *values) string { return types.Stem(v.path) }},
	{"{//}", func(v *values) string { return types.Dir(v.path) }},
	{"{/}", func(v *values) string { return types.Base(v.path) }},
	{"{}", func(v *values) string { return v.path }},
}

type values struct {
	path string
	tags types.TagSet
}

func newValues(path string, tags types.TagSet) *values {
	return &values{path: path, tags: tags}
}

func (v *values) render(arg string) string {
	if IsShellOperator(arg) {
		return arg
	}
	return quote(v.substitute(arg))
}

// substitute scans arg once, so text coming from the path or the tags is
// never itself treated as a placeholder.
func (v *values) substitute(arg string) string {
	if !strings.Contains(arg, "{") {
		return arg
	}

	var b strings.Builder
	for i := 0; i < len(arg); {
		if arg[i] == '{' {
			if p, ok := matchAt(arg[i:]); ok {
				b.WriteString(p.value(v))
				i += len(p.token)
				continue
			}
		}
		b.WriteByte(arg[i])
		i++
	}
	return b.String()
}

func matchAt(s string) (placeholder, bool) {
	for _, p := range placeholders {
		if strings.HasPrefix(s, p.token) {
			return p, true
		}
	}
	return placeholder{}, false
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}
