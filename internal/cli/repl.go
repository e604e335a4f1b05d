package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/calvinalkan/statecheck/internal/config"
)

const replPrompt = "statecheck> "

var errNoInput = errors.New("repl needs input on stdin")

var replWords = []string{"push", "get", "reset", "len", "state", "history", "shrink", "undo", "clear", "help", "quit"}

// ReplCmd returns the repl command. Line editing is used when in is a
// terminal; otherwise lines are read as they come, which makes the REPL
// scriptable.
func ReplCmd(ld loader, in io.Reader) *Command {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	qf := addQueueFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "repl [flags]",
		Short: "Step through a sequence interactively",
		Long: `Build a sequence one command at a time. After each command the whole
sequence is rerun from an empty queue and the step results, the queue and the
model are printed. Type 'help' for the commands.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			var overrides config.Config
			qf.apply(&overrides)

			cfg, err := ld.load(overrides, changedKeys(fs))
			if err != nil {
				return err
			}

			h, err := newHarness(cfg)
			if err != nil {
				return err
			}

			r := &repl{o: o, st: newStyles(o.Out()), s: h.Session()}

			o.Printf("statecheck repl (model %s, payload %s). Type 'help' for commands.\n", cfg.Model, cfg.Payload)

			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return r.runLiner(ctx, historyFile(ld.input.Env))
			}

			if in == nil {
				return errNoInput
			}

			return r.runLines(ctx, in)
		},
	}
}

type repl struct {
	o  *IO
	st styles
	s  session
}

// runLiner reads lines with editing and history until quit, EOF or Ctrl-C.
func (r *repl) runLiner(ctx context.Context, history string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completeWord)

	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	defer saveHistory(line, history)

	for ctx.Err() == nil {
		input, err := line.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if !r.exec(input) {
			return nil
		}
	}

	return nil
}

// runLines reads plain lines until quit or EOF.
func (r *repl) runLines(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)

	for ctx.Err() == nil && sc.Scan() {
		if !r.exec(sc.Text()) {
			return nil
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

// exec runs one input line. It returns false when the user asked to quit.
func (r *repl) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		r.printHelp()
	case "len":
		r.o.Printf("%s (sequence of %d commands)\n", r.s.State(), r.s.Len())
	case "state":
		r.o.Println(r.s.State())
	case "history":
		r.o.Println(r.st.trace(r.s.History()))
	case "shrink":
		out, err := r.s.Shrink()
		if err != nil {
			r.o.Println("error:", err)

			return true
		}

		r.o.Println(r.st.trace(out))
	case "undo":
		if !r.s.Undo() {
			r.o.Println("nothing to undo")

			return true
		}

		r.o.Println(r.s.State())
	case "clear":
		r.s.Clear()
		r.o.Println(r.s.State())
	default:
		out, err := r.s.Step(fields)
		if err != nil {
			r.o.Println("error:", err)

			return true
		}

		r.o.Println(r.st.trace(out))
	}

	return true
}

func (r *repl) printHelp() {
	r.o.Println(`Commands:
  push <value>   Push a value (bare push for unit payloads)
  get            Pop one element
  reset          Reset the queue
  len            Show the queue length and sequence size
  state          Show the queue and the model
  history        Show the sequence with step results
  shrink         Shrink the failing sequence
  undo           Drop the last command
  clear          Start over with an empty sequence
  help           Show this help
  quit           Leave the repl

Several commands can go on one line: push 1, push 2, get`)
}

func completeWord(line string) []string {
	var out []string

	for _, w := range replWords {
		if strings.HasPrefix(w, strings.ToLower(line)) {
			out = append(out, w)
		}
	}

	return out
}

// historyFile returns the path of the liner history, or "" without a home.
func historyFile(env map[string]string) string {
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".statecheck_history")
	}

	return ""
}

func saveHistory(line *liner.State, path string) {
	if path == "" {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}

	_, _ = line.WriteHistory(f)
	_ = f.Close()
}
