package walker

import (
	"sort"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/types"
)

// SortActions orders actions by destination path, comparing one segment
// at a time so that a directory sorts before everything inside it
// ("a/b" < "a-b"). Ties keep the kind order create, write, rename.
func SortActions(actions []types.FileAction) {
	sort.SliceStable(actions, func(i, j int) bool {
		if c := ComparePaths(actions[i].Path, actions[j].Path); c != 0 {
			return c < 0
		}
		return kindOrder(actions[i].Kind) < kindOrder(actions[j].Kind)
	})
}

// ComparePaths compares two slash separated paths segment by segment
func ComparePaths(a, b string) int {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func kindOrder(k types.ActionKind) int {
	switch k {
	case types.ActionCreateDir:
		return 0
	case types.ActionWriteFile:
		return 1
	default:
		return 2
	}
}
