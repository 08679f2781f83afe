// Package xregex translates the XPath/XQuery functions-and-operators
// regular expression dialect (used by fn:matches, fn:replace,
// fn:tokenize) into Go's RE2-based regexp syntax, and caches compiled
// patterns.
//
// The compiled-pattern cache is a sync.Map, safe for concurrent read
// and lazily populated since patterns aren't known until call time.
package xregex

import (
	"regexp"
	"strings"
	"sync"

	"github.com/basilisk-labs/xdom/internal/xerr"
)

var cache sync.Map // map[string]*regexp.Regexp, keyed by "flags\x00pattern"

// Compile translates an XPath regex pattern plus its flag string ("i",
// "s", "m", "x" in any combination) into a compiled Go regexp, caching
// the result.
func Compile(pattern, flags string) (*regexp.Regexp, error) {
	for _, f := range flags {
		switch f {
		case 'i', 's', 'm', 'x':
		default:
			return nil, xerr.Dynamicf("FORX0001", "invalid regex flag %q", string(f))
		}
	}
	key := flags + "\x00" + pattern
	if v, ok := cache.Load(key); ok {
		return v.(*regexp.Regexp), nil
	}
	translated, err := translate(pattern, flags)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		return nil, xerr.Dynamicf("FORX0002", "invalid regular expression %q: %v", pattern, err)
	}
	actual, _ := cache.LoadOrStore(key, re)
	return actual.(*regexp.Regexp), nil
}

// translate rewrites XPath-regex-only syntax into RE2 syntax and folds
// in the flags as an inline (?ismU...)-style prefix understood by Go's
// regexp/syntax.
func translate(pattern, flags string) (string, error) {
	var sb strings.Builder
	var modeFlags strings.Builder
	extended := false
	for _, f := range flags {
		switch f {
		case 'i':
			modeFlags.WriteByte('i')
		case 's':
			modeFlags.WriteByte('s')
		case 'm':
			modeFlags.WriteByte('m')
		case 'x':
			extended = true
		}
	}
	if modeFlags.Len() > 0 {
		sb.WriteString("(?")
		sb.WriteString(modeFlags.String())
		sb.WriteString(")")
	}

	runes := []rune(pattern)
	inClass := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if extended && !inClass && (r == ' ' || r == '\t' || r == '\n' || r == '\r') {
			continue
		}
		switch r {
		case '[':
			inClass = true
			sb.WriteRune(r)
		case ']':
			inClass = false
			sb.WriteRune(r)
		case '\\':
			if i+1 < len(runes) {
				next := runes[i+1]
				if translated, ok := translateEscape(next); ok {
					sb.WriteString(translated)
					i++
					continue
				}
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), nil
}

// translateEscape rewrites the handful of XPath-regex character-class
// escapes RE2 doesn't accept verbatim. \c, \C, \i, \I (name-char classes)
// have no RE2 analogue and are approximated by \w, which covers the
// common ASCII case.
func translateEscape(r rune) (string, bool) {
	switch r {
	case 'i', 'I', 'c', 'C':
		return `\w`, true
	}
	return "", false
}
