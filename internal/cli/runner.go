package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/errika/internal/model"
	"github.com/idilsaglam/errika/internal/order"
	"github.com/idilsaglam/errika/internal/store"
	"github.com/idilsaglam/errika/internal/tui"
	"github.com/idilsaglam/errika/internal/ui"
	"github.com/idilsaglam/errika/internal/validate"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool // list grouped by pending/done

	Store *store.Store
	Log   zerolog.Logger
	In    io.Reader // answers to confirmation prompts; stdin when nil

	// Interactive runs the widget; tui.Run when nil.
	Interactive func(tui.Todos, zerolog.Logger) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.In == nil {
		opt.In = os.Stdin
	}
	if opt.Interactive == nil {
		opt.Interactive = tui.Run
	}
	if len(args) == 0 {
		args = []string{"ui"}
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		if err := opt.Interactive(opt.Store, opt.Log); err != nil {
			ui.Fail("widget: " + err.Error())
			return 1
		}
		return 0

	case "ls":
		return doList(opt)

	case "stats":
		return doStats(opt)

	case "add":
		return doAdd(opt, a)

	case "done", "undo":
		if len(a) != 1 {
			ui.Fail("usage: errika " + cmd + " <id>")
			return 2
		}
		id, ok := parseID(cmd, a[0])
		if !ok {
			return 2
		}
		return doToggle(opt, id, cmd == "done")

	case "edit":
		if len(a) < 2 {
			ui.Fail("usage: errika edit <id> <text...>")
			return 2
		}
		id, ok := parseID(cmd, a[0])
		if !ok {
			return 2
		}
		return doEdit(opt, id, strings.Join(a[1:], " "))

	case "rm":
		return doRemove(opt, a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.ErrOut())
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Out(), `errika - a tiny todo widget

Usage:
  errika [flags] <subcommand> [args]

Subcommands:
  ui                      Open the interactive widget (default)
  add [-p prio] <text...> Add a todo (prio: Low, Medium, High, Urgent)
  ls                      List todos, pending and most urgent first
  done <id>               Mark a todo completed
  undo <id>               Mark a todo pending again
  edit <id> <text...>     Replace a todo's text
  rm [-y] <id>            Delete a todo (asks first unless -y)
  stats                   Show totals

Examples:
  errika add -p High "Renew passport"
  errika ls
  errika done 2
  errika rm 3
`)
}

func parseID(cmd, s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		ui.Fail(cmd + ": not an id: " + s)
		return 0, false
	}
	return n, true
}

// saved reports a persistence failure. The change itself is kept in memory
// but this process is about to exit, so it counts as an error.
func saved(opt Options, err error) int {
	if err == nil {
		return 0
	}
	var we *store.WriteError
	if errors.As(err, &we) {
		ui.Fail("save: " + we.Err.Error())
	} else {
		ui.Fail(err.Error())
	}
	opt.Log.Error().Err(err).Msg("command failed")
	return 1
}

func notFound(opt Options, id int) int {
	err := errors.Wrapf(store.ErrNotFound, "id %d", id)
	ui.Fail(err.Error())
	fmt.Fprintln(ui.ErrOut(), ui.Dim("Hint: run `errika ls` to see ids"))
	opt.Log.Debug().Int("id", id).Msg("no such todo")
	return 1
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	items := order.Display(opt.Store.List())
	st := opt.Store.Stats()
	t := ui.Current()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), st.Completed,
		ui.C(t.Pending, t.SymUnchecked), st.Pending,
		ui.C(t.Accent, "Total"), st.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(st.Completed, st.Total, 28)))
	lines = append(lines, "")

	if opt.Group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `errika add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doStats(opt Options) int {
	st := opt.Store.Stats()
	fmt.Fprintf(ui.Out(), "Total: %d | Completed: %d | Pending: %d\n", st.Total, st.Completed, st.Pending)
	return 0
}

func doAdd(opt Options, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	prio := fs.String("p", string(model.DefaultPriority), "priority")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		ui.Fail("usage: errika add [-p Low|Medium|High|Urgent] <text...>")
		return 2
	}
	p, ok := model.ParsePriority(*prio)
	if !ok {
		ui.Fail("add: " + validate.Priority(*prio).Error())
		return 2
	}

	it, err := opt.Store.Add(strings.Join(fs.Args(), " "), p)
	if errors.Is(err, store.ErrEmptyText) {
		ui.Fail("add: empty text")
		return 2
	}
	if code := saved(opt, err); code != 0 {
		return code
	}
	ui.OK(fmt.Sprintf("added #%d", it.ID))
	return 0
}

func doToggle(opt Options, id int, completed bool) int {
	// Toggle ignores unknown ids; a command line user wants to hear about it.
	if _, ok := opt.Store.Get(id); !ok {
		return notFound(opt, id)
	}
	if code := saved(opt, opt.Store.Toggle(id, completed)); code != 0 {
		return code
	}
	if completed {
		ui.OK(fmt.Sprintf("completed #%d", id))
	} else {
		ui.OK(fmt.Sprintf("reopened #%d", id))
	}
	return 0
}

func doEdit(opt Options, id int, text string) int {
	if strings.TrimSpace(text) == "" {
		ui.Fail("edit: empty text")
		return 2
	}
	ok, err := opt.Store.Edit(id, text)
	if !ok {
		return notFound(opt, id)
	}
	if code := saved(opt, err); code != 0 {
		return code
	}
	ui.OK(fmt.Sprintf("edited #%d", id))
	return 0
}

func doRemove(opt Options, args []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("y", false, "do not ask")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		ui.Fail("usage: errika rm [-y] <id>")
		return 2
	}
	id, ok := parseID("rm", fs.Arg(0))
	if !ok {
		return 2
	}
	it, ok := opt.Store.Get(id)
	if !ok {
		return notFound(opt, id)
	}
	if !*yes && !confirm(opt.In, fmt.Sprintf("Delete %q? [y/N] ", it.Text)) {
		ui.OK("kept")
		return 0
	}
	removed, err := opt.Store.Delete(id)
	if !removed {
		return notFound(opt, id)
	}
	if code := saved(opt, err); code != 0 {
		return code
	}
	ui.OK(fmt.Sprintf("removed #%d", id))
	return 0
}

func confirm(in io.Reader, prompt string) bool {
	fmt.Fprint(ui.Out(), prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// -------------- rendering helpers --------------

func flatLines(items []*model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no todos")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		idx := fmt.Sprintf("%3d.", it.ID)
		box := t.BoxUnchecked
		color := t.Muted
		if it.Completed {
			box, color = t.BoxChecked, t.Success
		}
		text := it.Text
		if r := []rune(text); len(r) > 60 {
			text = string(r[:57]) + "..."
		}
		prio := ui.C(t.PriorityColor(it.Priority), fmt.Sprintf("%-6s", it.Priority))
		out = append(out, fmt.Sprintf("%s %s %s %s", ui.Dim(idx), ui.C(color, box), prio, text))
	}
	return out
}

func groupLines(items []*model.Item) []string {
	t := ui.Current()
	var pend, done []*model.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Completed"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
