package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/errika/internal/model"
	"github.com/idilsaglam/errika/internal/store"
	"github.com/idilsaglam/errika/internal/tui"
	"github.com/idilsaglam/errika/internal/ui"
)

type harness struct {
	store  *store.Store
	out    *bytes.Buffer
	errOut *bytes.Buffer
	opt    Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:  store.New(filepath.Join(t.TempDir(), "todos.json")),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	h.opt = Options{Store: h.store, Log: zerolog.Nop(), In: strings.NewReader("")}
	ui.SetOutput(h.out, h.errOut)
	ui.SetColorForcing(false, true)
	t.Cleanup(func() {
		ui.SetOutput(nil, nil)
		ui.SetColorForcing(false, false)
	})
	return h
}

func (h *harness) run(args ...string) int {
	return Run(args, h.opt)
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("add", "Buy", "milk"))
	require.Equal(t, 0, h.run("add", "-p", "urgent", "Pay rent"))
	require.Contains(t, h.out.String(), "added #0")
	require.Contains(t, h.out.String(), "added #1")

	h.out.Reset()
	require.Equal(t, 0, h.run("ls"))
	out := h.out.String()
	rent := strings.Index(out, "Pay rent")
	milk := strings.Index(out, "Buy milk")
	require.True(t, rent >= 0 && milk >= 0)
	require.Less(t, rent, milk, "urgent todo should be listed first")
}

func TestAddUsageErrors(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 2, h.run("add"))
	require.Equal(t, 2, h.run("add", "   "))
	require.Equal(t, 2, h.run("add", "-p", "someday", "x"))
	require.Contains(t, h.errOut.String(), "priority must be one of Low Medium High Urgent")
	require.Empty(t, h.store.List())
}

func TestDoneUndo(t *testing.T) {
	h := newHarness(t)
	it, err := h.store.Add("walk dog", model.Medium)
	require.NoError(t, err)

	require.Equal(t, 0, h.run("done", "0"))
	got, _ := h.store.Get(it.ID)
	require.True(t, got.Completed)

	require.Equal(t, 0, h.run("undo", "0"))
	got, _ = h.store.Get(it.ID)
	require.False(t, got.Completed)

	require.Equal(t, 1, h.run("done", "7"))
	require.Contains(t, h.errOut.String(), "todo not found")
	require.Equal(t, 2, h.run("done", "x"))
	require.Equal(t, 2, h.run("done"))
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	it, _ := h.store.Add("draft", model.Low)

	require.Equal(t, 0, h.run("edit", "0", "final", "copy"))
	got, _ := h.store.Get(it.ID)
	require.Equal(t, "final copy", got.Text)

	require.Equal(t, 2, h.run("edit", "0", "  "))
	require.Equal(t, 1, h.run("edit", "5", "ghost"))
	require.Equal(t, 2, h.run("edit", "0"))
}

func TestRemoveAsksFirst(t *testing.T) {
	h := newHarness(t)
	_, _ = h.store.Add("keep me", model.Low)

	h.opt.In = strings.NewReader("n\n")
	require.Equal(t, 0, h.run("rm", "0"))
	require.Len(t, h.store.List(), 1)
	require.Contains(t, h.out.String(), `Delete "keep me"?`)

	h.opt.In = strings.NewReader("yes\n")
	require.Equal(t, 0, h.run("rm", "0"))
	require.Empty(t, h.store.List())

	require.Equal(t, 1, h.run("rm", "-y", "0"))
}

func TestRemoveYes(t *testing.T) {
	h := newHarness(t)
	_, _ = h.store.Add("gone", model.Low)
	require.Equal(t, 0, h.run("rm", "-y", "0"))
	require.Empty(t, h.store.List())
	require.Equal(t, 2, h.run("rm"))
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	a, _ := h.store.Add("a", model.Low)
	_, _ = h.store.Add("b", model.Low)
	_, _ = h.store.Add("c", model.Low)
	require.NoError(t, h.store.Toggle(a.ID, true))

	require.Equal(t, 0, h.run("stats"))
	require.Equal(t, "Total: 3 | Completed: 1 | Pending: 2\n", h.out.String())
}

func TestGroupedList(t *testing.T) {
	h := newHarness(t)
	a, _ := h.store.Add("finished", model.High)
	_, _ = h.store.Add("open", model.Low)
	require.NoError(t, h.store.Toggle(a.ID, true))

	h.opt.Group = true
	require.Equal(t, 0, h.run("ls"))
	out := h.out.String()
	require.Less(t, strings.Index(out, "Pending"), strings.Index(out, "open"))
	require.Less(t, strings.Index(out, "Completed"), strings.Index(out, "finished"))
}

func TestDefaultOpensWidget(t *testing.T) {
	h := newHarness(t)
	var called bool
	h.opt.Interactive = func(todos tui.Todos, _ zerolog.Logger) error {
		called = true
		require.NotNil(t, todos)
		return nil
	}
	require.Equal(t, 0, h.run())
	require.True(t, called)

	h.opt.Interactive = func(tui.Todos, zerolog.Logger) error { return errors.New("no tty") }
	require.Equal(t, 1, h.run("ui"))
	require.Contains(t, h.errOut.String(), "widget: no tty")
}

func TestUnknownAndHelp(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 2, h.run("frobnicate"))
	require.Contains(t, h.errOut.String(), "unknown subcommand: frobnicate")
	require.Equal(t, 0, h.run("help"))
	require.Contains(t, h.out.String(), "Subcommands:")
}

func TestWriteFailureExitCode(t *testing.T) {
	h := newHarness(t)
	// parent path is a file, so saving cannot create the directory
	blocked := filepath.Join(t.TempDir(), "file")
	require.NoError(t, store.New(blocked).Save())
	h.opt.Store = store.New(filepath.Join(blocked, "todos.json"))

	require.Equal(t, 1, h.run("add", "unsaved"))
	require.Contains(t, h.errOut.String(), "save:")
}
