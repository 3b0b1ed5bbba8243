package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kgrange/bytediff/pkg/bytediff"
	"github.com/peterh/liner"
)

// replCommands lists the REPL's verbs, also used for tab completion.
var replCommands = []string{
	"list", "ls", "show", "find", "stats", "help", "exit", "quit", "q",
}

// deltaREPL is the interactive line-editing browser "bytediff info
// --interactive" drops into.
type deltaREPL struct {
	decoded   bytediff.DecodedDelta
	deltaSize int
	liner     *liner.State
}

// RunREPL opens a readline-style session for inspecting a decoded delta's
// command stream.
func RunREPL(decoded bytediff.DecodedDelta, deltaSize int) error {
	r := &deltaREPL{decoded: decoded, deltaSize: deltaSize}

	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Printf("bytediff info (commands=%d, version_size=%d, inplace=%v)\n",
		len(decoded.Commands), decoded.VersionSize, decoded.Inplace)
	fmt.Println("Type 'help' for available commands.")

	for {
		line, err := r.liner.Prompt("bytediff> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		verb, args := strings.ToLower(parts[0]), parts[1:]

		switch verb {
		case "exit", "quit", "q":
			r.saveHistory()

			return nil
		case "help", "?":
			r.printHelp()
		case "list", "ls":
			r.cmdList(args)
		case "show":
			r.cmdShow(args)
		case "find":
			r.cmdFind(args)
		case "stats":
			Summarize(r.decoded, r.deltaSize).Print(NewIO(os.Stdout, os.Stderr))
		default:
			fmt.Printf("unknown command: %s (type 'help' for commands)\n", verb)
		}
	}

	r.saveHistory()

	return nil
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".bytediff_history")
}

func (r *deltaREPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil { //nolint:gosec // fixed per-user history path
			_, _ = r.liner.WriteHistory(f)
			_ = f.Close()
		}
	}
}

func (r *deltaREPL) completer(line string) []string {
	lower := strings.ToLower(line)

	var out []string

	for _, c := range replCommands {
		if strings.HasPrefix(c, lower) {
			out = append(out, c)
		}
	}

	return out
}

func (r *deltaREPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  list [n]         Show the first n commands (default 20)")
	fmt.Println("  show <i>         Show command at index i")
	fmt.Println("  find <dst>       Show the command covering output offset dst")
	fmt.Println("  stats            Print delta statistics")
	fmt.Println("  help             Show this help")
	fmt.Println("  exit / quit / q  Exit")
}

func (r *deltaREPL) cmdList(args []string) {
	n := 20

	if len(args) >= 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			fmt.Println("usage: list [n]")

			return
		}

		n = v
	}

	for i, c := range r.decoded.Commands {
		if i >= n {
			fmt.Printf("... (%d more, use 'list <n>' to see more)\n", len(r.decoded.Commands)-n)

			break
		}

		printPlacedCommand(i, c)
	}
}

func (r *deltaREPL) cmdShow(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: show <i>")

		return
	}

	i, err := strconv.Atoi(args[0])
	if err != nil || i < 0 || i >= len(r.decoded.Commands) {
		fmt.Printf("index out of range: %s\n", args[0])

		return
	}

	printPlacedCommand(i, r.decoded.Commands[i])
}

func (r *deltaREPL) cmdFind(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: find <dst>")

		return
	}

	dst, err := strconv.Atoi(args[0])
	if err != nil || dst < 0 {
		fmt.Printf("invalid offset: %s\n", args[0])

		return
	}

	for i, c := range r.decoded.Commands {
		if dst >= c.Dst && dst < c.Dst+c.Len() {
			printPlacedCommand(i, c)

			return
		}
	}

	fmt.Println("(no command covers that offset)")
}

func printPlacedCommand(i int, c bytediff.PlacedCommand) {
	switch c.Kind {
	case bytediff.KindCopy:
		fmt.Printf("%5d. COPY src=%-10d dst=%-10d len=%d\n", i, c.Src, c.Dst, c.Length)
	case bytediff.KindAdd:
		fmt.Printf("%5d. ADD  dst=%-10d len=%d\n", i, c.Dst, len(c.Data))
	}
}
