package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNonSlugRunes = regexp.MustCompile(`[^0-9a-z]+`)
	reMultiHyphen  = regexp.MustCompile(`-+`)
)

func trimAndLower(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return s
}

func collapseHyphens(s string) string {
	s = reMultiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Slugify builds a URL-safe club slug. Non-ASCII letters are dropped, so
// callers should treat an empty result as an invalid name.
func Slugify(input string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reNonSlugRunes.ReplaceAllString(s, "-") },
		collapseHyphens,
	}
	return p.Apply(input)
}
