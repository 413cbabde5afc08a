// Package main is the command-line driver for the flux interpreter: run a
// source file to completion, or start a line-oriented REPL.
//
// This driver, and everything in it, sits outside the interpreter core: it
// exists only to make the library runnable from a terminal.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/arnegard/flux"
)

const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
)

var rootCmd = &cobra.Command{
	Use:   "flux [script]",
	Short: "Run a flux script, or start an interactive REPL with none given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runFile(args[0])
		}
		return runRepl()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	interp := flux.New()
	switch interp.Run(string(src)) {
	case flux.CompileError:
		os.Exit(exitCompileError)
	case flux.RuntimeError:
		os.Exit(exitRuntimeError)
	}
	return nil
}

func runRepl() error {
	interp := flux.New()

	rl, err := readline.New("> ")
	if err != nil {
		// no TTY (piped stdin, CI, etc.): fall back to a plain line reader.
		scanLines(os.Stdin, interp)
		return nil
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		interp.Run(line)
	}
}

func scanLines(r io.Reader, interp *flux.Interpreter) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		interp.Run(scanner.Text())
	}
}
