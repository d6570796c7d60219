// Package order decides how todos are presented.
package order

import (
	"slices"

	"github.com/idilsaglam/errika/internal/model"
)

// Display returns items in presentation order: pending before completed,
// then higher priority first. Ties keep their relative input order.
// The input slice is not modified; the returned slice shares its pointers.
func Display(items []*model.Item) []*model.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, compare)
	return out
}

func compare(a, b *model.Item) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	// higher rank first
	return b.Priority.Rank() - a.Priority.Rank()
}
