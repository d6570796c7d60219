package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/errika/internal/model"
)

func ids(items []*model.Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDisplayPendingFirstThenPriority(t *testing.T) {
	a := &model.Item{ID: 1, Text: "A", Priority: model.Low}
	b := &model.Item{ID: 2, Text: "B", Priority: model.Urgent}
	c := &model.Item{ID: 3, Text: "C", Priority: model.High, Completed: true}
	d := &model.Item{ID: 4, Text: "D", Priority: model.Urgent}

	in := []*model.Item{a, b, c, d}
	got := Display(in)

	require.Equal(t, []*model.Item{b, d, a, c}, got)
	// input untouched
	require.Equal(t, []int{1, 2, 3, 4}, ids(in))
}

func TestDisplayKeepsPointers(t *testing.T) {
	a := &model.Item{ID: 1, Priority: model.Medium}
	got := Display([]*model.Item{a})
	require.Same(t, a, got[0])
}

func TestDisplayUnknownPriorityLast(t *testing.T) {
	items := []*model.Item{
		{ID: 1, Priority: model.Priority("odd")},
		{ID: 2, Priority: model.Low},
		{ID: 3, Priority: model.Medium, Completed: true},
		{ID: 4, Priority: model.Priority("odd"), Completed: true},
		{ID: 5, Priority: model.Urgent, Completed: true},
	}
	require.Equal(t, []int{2, 1, 5, 3, 4}, ids(Display(items)))
}

func TestDisplayStableTies(t *testing.T) {
	var items []*model.Item
	for i := 1; i <= 6; i++ {
		items = append(items, &model.Item{ID: i, Priority: model.High})
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(Display(items)))
}

func TestDisplayEmpty(t *testing.T) {
	require.Empty(t, Display(nil))
}
