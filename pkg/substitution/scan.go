package substitution

import (
	"bytes"
)

// Apply rewrites text in a single left-to-right scan. At each position the
// rules are tried in plan order and the first match claims its bytes; the
// scan resumes right after the claimed range, so a shorter pattern can
// never match inside text already consumed by a longer one, and
// replacement output is never rescanned. It returns the rewritten text and
// the number of substitutions. When nothing matches the input slice is
// returned as is.
func (p *Plan) Apply(text []byte) ([]byte, int) {
	if p.Empty() || len(text) == 0 {
		return text, 0
	}

	var out bytes.Buffer
	count, last := 0, 0
	for i := 0; i < len(text); {
		r, ok := p.matchAt(text[i:])
		if !ok {
			i++
			continue
		}
		if count == 0 {
			out.Grow(len(text))
		}
		out.Write(text[last:i])
		out.WriteString(r.Replacement)
		i += len(r.Pattern)
		last = i
		count++
	}

	if count == 0 {
		return text, 0
	}
	out.Write(text[last:])
	return out.Bytes(), count
}

// ApplyString is Apply for strings
func (p *Plan) ApplyString(s string) (string, int) {
	if p.Empty() || s == "" {
		return s, 0
	}
	out, n := p.Apply([]byte(s))
	if n == 0 {
		return s, 0
	}
	return string(out), n
}

// matchAt returns the first rule, in plan order, whose pattern is a prefix
// of text.
func (p *Plan) matchAt(text []byte) (Rule, bool) {
	for _, idx := range p.index[text[0]] {
		r := p.Rules[idx]
		if len(r.Pattern) <= len(text) && string(text[:len(r.Pattern)]) == r.Pattern {
			return r, true
		}
	}
	return Rule{}, false
}
