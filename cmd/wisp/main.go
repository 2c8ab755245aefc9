// cmd/wisp is the command-line driver: `wisp [script]`.
//
// Zero arguments enters the interactive loop; one argument runs a file;
// more than one is a usage error. Built on cobra for argument handling and
// on peterh/liner for the REPL's line editing and history.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	wisp "github.com/jacobaustin123/minipython-interpreter"
)

const (
	promptMain  = ">>> "
	promptCont  = "... "
	historyFile = ".wisp_history"
	banner      = "Wisp — type exit() or quit() to leave"
)

func main() {
	root := &cobra.Command{
		Use:           "wisp [script]",
		Short:         "run or interactively evaluate a Wisp source file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("too many arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				os.Exit(runFile(args[0]))
			}
			os.Exit(runRepl())
			return nil
		},
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Usage: wisp [script]")
		os.Exit(1)
	}
}

// runSource lexes, parses, and evaluates src against ip, returning whatever
// diagnostic aborted the run (or nil on success).
func runSource(ip *wisp.Interpreter, src string) error {
	tokens, err := wisp.NewLexer(src).Scan()
	if err != nil {
		return err
	}
	stmts, err := wisp.NewParser(tokens).Parse()
	if err != nil {
		return err
	}
	return ip.Run(stmts)
}

func printDiagnostic(err error, src string) {
	fmt.Fprintln(os.Stderr, err.Error())
	if snippet := wisp.Render(err, src); snippet != "" {
		fmt.Fprintln(os.Stderr, snippet)
	}
}

// runFile reads and runs one script. Exit code is 1 if the script cannot be
// read or an assertion failed; every other diagnostic is reported but still
// exits 0.
func runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "could not read script").Error())
		return 1
	}
	src := string(data)
	ip := wisp.NewInterpreter(os.Stdout)

	if err := runSource(ip, src); err != nil {
		printDiagnostic(err, src)
		if _, failed := err.(*wisp.AssertionError); failed {
			return 1
		}
		return 0
	}
	return 0
}

func runRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ip := wisp.NewInterpreter(os.Stdout)

	for {
		code, ok := readBlock(ln)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit()" || trimmed == "quit()" {
			break
		}

		if err := runSource(ip, code); err != nil {
			printDiagnostic(err, code)
			ln.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))
			continue
		}
		if ip.HasLastValue && ip.LastValue.Tag != wisp.VNone {
			fmt.Println(wisp.Stringify(ip.LastValue))
		}
		ln.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))
	}
	return 0
}

// readBlock implements the interactive line discipline: a line whose
// trimmed form ends in ':' opens a block, accumulated until a blank line;
// any other line dispatches on its own.
func readBlock(ln *liner.State) (string, bool) {
	line, err := ln.Prompt(promptMain)
	if err != nil {
		return "", false
	}
	trimmedRight := strings.TrimRight(line, " \t")
	if !strings.HasSuffix(trimmedRight, ":") {
		return line, true
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n")
	for {
		cont, err := ln.Prompt(promptCont)
		if err != nil || strings.TrimSpace(cont) == "" {
			break
		}
		b.WriteString(cont)
		b.WriteString("\n")
	}
	return b.String(), true
}
