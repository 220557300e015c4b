package rewrite

import (
	"path"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/substitution"
	"github.com/arthur-debert/liscaf/pkg/types"
)

// Text rewrites content according to plan. Binary content is returned
// unchanged; it is never decoded.
func Text(content []byte, class types.ContentClass, plan *substitution.Plan) ([]byte, int) {
	if class == types.ClassBinary {
		return content, 0
	}
	return plan.Apply(content)
}

// Segment rewrites a single path component. Any separator produced by a
// replacement is turned into "-" so the segment stays one component. A
// rewrite that would yield "", "." or ".." leaves the segment as it was.
func Segment(segment string, plan *substitution.Plan) (string, int) {
	out, n := plan.ApplyString(segment)
	if n == 0 {
		return segment, 0
	}
	out = strings.NewReplacer("/", "-", "\\", "-").Replace(out)
	if out == "" || out == "." || out == ".." {
		return segment, 0
	}
	return out, n
}

// Path rewrites every component of a slash separated relative path
// independently and returns the new path with the total substitution
// count.
func Path(rel string, plan *substitution.Plan) (string, int) {
	if rel == "" || rel == "." {
		return rel, 0
	}
	parts := strings.Split(path.Clean(rel), "/")
	total := 0
	for i, part := range parts {
		var n int
		parts[i], n = Segment(part, plan)
		total += n
	}
	if total == 0 {
		return rel, 0
	}
	return strings.Join(parts, "/"), total
}
