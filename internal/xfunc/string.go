package xfunc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/basilisk-labs/xdom/internal/value"
	"github.com/basilisk-labs/xdom/internal/xerr"
	"github.com/basilisk-labs/xdom/internal/xregex"
)

func fnString(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	seq, err := oneArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.String(value.AsString(seq))), nil
}

func fnConcat(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(value.AsString(a))
	}
	return value.Singleton(value.String(sb.String())), nil
}

func fnStringJoin(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	sep := ""
	if len(args) == 2 {
		sep = value.AsString(args[1])
	}
	parts := make([]string, len(args[0]))
	for i, itm := range value.Atomize(args[0]) {
		parts[i] = itm.String()
	}
	return value.Singleton(value.String(strings.Join(parts, sep))), nil
}

func fnSubstring(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s := []rune(value.AsString(args[0]))
	start, err := value.AsNumber(args[1])
	if err != nil {
		return nil, err
	}
	length := float64(len(s)) - start + 1
	if len(args) == 3 {
		length, err = value.AsNumber(args[2])
		if err != nil {
			return nil, err
		}
	}
	// XPath's fn:substring rounds to nearest and clamps to the string
	// bounds rather than erroring on out-of-range indices.
	from := int(round(start)) - 1
	to := from + int(round(length))
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	if to < from {
		return value.Singleton(value.String("")), nil
	}
	return value.Singleton(value.String(string(s[from:to]))), nil
}

func round(f float64) float64 {
	if f < 0 {
		return -float64(int64(-f + 0.5))
	}
	return float64(int64(f + 0.5))
}

func fnStringLength(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	seq, err := oneArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Integer(utf8.RuneCountInString(value.AsString(seq)))), nil
}

func fnNormalizeSpace(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	seq, err := oneArgOrContext(ctx, args)
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.String(strings.Join(strings.Fields(value.AsString(seq)), " "))), nil
}

func fnUpperCase(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.String(cases.Upper(language.Und).String(value.AsString(args[0])))), nil
}

func fnLowerCase(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.String(cases.Lower(language.Und).String(value.AsString(args[0])))), nil
}

func fnContains(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(strings.Contains(value.AsString(args[0]), value.AsString(args[1])))), nil
}

func fnStartsWith(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(strings.HasPrefix(value.AsString(args[0]), value.AsString(args[1])))), nil
}

func fnEndsWith(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.Boolean(strings.HasSuffix(value.AsString(args[0]), value.AsString(args[1])))), nil
}

func fnSubstringBefore(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s, sep := value.AsString(args[0]), value.AsString(args[1])
	idx := strings.Index(s, sep)
	if idx < 0 {
		return value.Singleton(value.String("")), nil
	}
	return value.Singleton(value.String(s[:idx])), nil
}

func fnSubstringAfter(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s, sep := value.AsString(args[0]), value.AsString(args[1])
	idx := strings.Index(s, sep)
	if idx < 0 {
		return value.Singleton(value.String("")), nil
	}
	return value.Singleton(value.String(s[idx+len(sep):])), nil
}

func fnTranslate(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s := []rune(value.AsString(args[0]))
	from := []rune(value.AsString(args[1]))
	to := []rune(value.AsString(args[2]))
	var sb strings.Builder
	for _, r := range s {
		idx := -1
		for i, f := range from {
			if f == r {
				idx = i
				break
			}
		}
		if idx < 0 {
			sb.WriteRune(r)
			continue
		}
		if idx < len(to) {
			sb.WriteRune(to[idx])
		}
	}
	return value.Singleton(value.String(sb.String())), nil
}

func fnEncodeForURI(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	return value.Singleton(value.String(encodeForURI(value.AsString(args[0])))), nil
}

// encodeForURI percent-encodes everything except unreserved characters
// per RFC 3986.
func encodeForURI(s string) string {
	var sb strings.Builder
	for _, b := range []byte(s) {
		if isUnreservedURIByte(b) {
			sb.WriteByte(b)
		} else {
			fmt.Fprintf(&sb, "%%%02X", b)
		}
	}
	return sb.String()
}

func isUnreservedURIByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') ||
		b == '-' || b == '_' || b == '.' || b == '~'
}

func fnNormalizeUnicode(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s := value.AsString(args[0])
	form := "NFC"
	if len(args) > 1 {
		form = strings.ToUpper(strings.TrimSpace(value.AsString(args[1])))
	}
	switch form {
	case "", "NFC":
		return value.Singleton(value.String(norm.NFC.String(s))), nil
	case "NFD":
		return value.Singleton(value.String(norm.NFD.String(s))), nil
	case "NFKC":
		return value.Singleton(value.String(norm.NFKC.String(s))), nil
	case "NFKD":
		return value.Singleton(value.String(norm.NFKD.String(s))), nil
	}
	return nil, xerr.Dynamicf("FOCH0003", "unsupported normalization form %q", form)
}

func regexFlags(args []value.Sequence, idx int) string {
	if len(args) > idx {
		return value.AsString(args[idx])
	}
	return ""
}

func fnMatches(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	re, err := xregex.Compile(value.AsString(args[1]), regexFlags(args, 2))
	if err != nil {
		return nil, err
	}
	return value.Singleton(value.Boolean(re.MatchString(value.AsString(args[0])))), nil
}

func fnReplace(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	re, err := xregex.Compile(value.AsString(args[1]), regexFlags(args, 3))
	if err != nil {
		return nil, err
	}
	repl := goReplacement(value.AsString(args[2]))
	return value.Singleton(value.String(re.ReplaceAllString(value.AsString(args[0]), repl))), nil
}

// goReplacement rewrites XPath's "$1"-style backreferences (which Go's
// regexp already accepts verbatim) and escapes a literal "$" written as
// "\$" per fn:replace's replacement-string syntax into Go's "$$" escape.
func goReplacement(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '$' {
			sb.WriteString("$$")
			i++
			continue
		}
		if s[i] == '$' {
			sb.WriteString("$")
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func fnTokenize(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s := value.AsString(args[0])
	if len(args) == 1 {
		fields := strings.Fields(s)
		out := make(value.Sequence, len(fields))
		for i, f := range fields {
			out[i] = value.String(f)
		}
		return out, nil
	}
	re, err := xregex.Compile(value.AsString(args[1]), regexFlags(args, 2))
	if err != nil {
		return nil, err
	}
	if s == "" {
		return value.Empty, nil
	}
	parts := re.Split(s, -1)
	out := make(value.Sequence, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return out, nil
}

func fnCodepointEqual(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	if len(args[0]) == 0 || len(args[1]) == 0 {
		return value.Empty, nil
	}
	return value.Singleton(value.Boolean(value.AsString(args[0]) == value.AsString(args[1]))), nil
}

func fnCodepointsToString(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	var sb strings.Builder
	for _, itm := range args[0] {
		n, err := value.AsNumber(value.Singleton(itm))
		if err != nil {
			return nil, err
		}
		sb.WriteRune(rune(n))
	}
	return value.Singleton(value.String(sb.String())), nil
}

func fnStringToCodepoints(ctx *Ctx, args []value.Sequence) (value.Sequence, error) {
	s := value.AsString(args[0])
	if s == "" {
		return value.Empty, nil
	}
	out := make(value.Sequence, 0, len(s))
	for _, r := range s {
		out = append(out, value.Integer(r))
	}
	return out, nil
}

func init() {
	Register(&Function{Name: "string", Namespace: NSFn, F: fnString, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "concat", Namespace: NSFn, F: fnConcat, MinArg: 2, MaxArg: -1})
	Register(&Function{Name: "string-join", Namespace: NSFn, F: fnStringJoin, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "substring", Namespace: NSFn, F: fnSubstring, MinArg: 2, MaxArg: 3})
	Register(&Function{Name: "string-length", Namespace: NSFn, F: fnStringLength, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "normalize-space", Namespace: NSFn, F: fnNormalizeSpace, MinArg: 0, MaxArg: 1})
	Register(&Function{Name: "normalize-unicode", Namespace: NSFn, F: fnNormalizeUnicode, MinArg: 1, MaxArg: 2})
	Register(&Function{Name: "upper-case", Namespace: NSFn, F: fnUpperCase, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "lower-case", Namespace: NSFn, F: fnLowerCase, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "contains", Namespace: NSFn, F: fnContains, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "starts-with", Namespace: NSFn, F: fnStartsWith, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "ends-with", Namespace: NSFn, F: fnEndsWith, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "substring-before", Namespace: NSFn, F: fnSubstringBefore, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "substring-after", Namespace: NSFn, F: fnSubstringAfter, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "translate", Namespace: NSFn, F: fnTranslate, MinArg: 3, MaxArg: 3})
	Register(&Function{Name: "encode-for-uri", Namespace: NSFn, F: fnEncodeForURI, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "matches", Namespace: NSFn, F: fnMatches, MinArg: 2, MaxArg: 3})
	Register(&Function{Name: "replace", Namespace: NSFn, F: fnReplace, MinArg: 3, MaxArg: 4})
	Register(&Function{Name: "tokenize", Namespace: NSFn, F: fnTokenize, MinArg: 1, MaxArg: 3})
	Register(&Function{Name: "codepoint-equal", Namespace: NSFn, F: fnCodepointEqual, MinArg: 2, MaxArg: 2})
	Register(&Function{Name: "codepoints-to-string", Namespace: NSFn, F: fnCodepointsToString, MinArg: 1, MaxArg: 1})
	Register(&Function{Name: "string-to-codepoints", Namespace: NSFn, F: fnStringToCodepoints, MinArg: 1, MaxArg: 1})
}
