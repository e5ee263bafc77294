package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/funvibe/classc/internal/config"
)

// Exit codes.
const (
	exitOK          = 0
	exitDiagnostics = 1 // the run reported errors
	exitUsage       = 2 // bad flags, config or environment
)

const usage = `classc checks class-based AST documents and builds their symbol tables.

Usage:
  classc <command> [flags] [paths...]

Commands:
  check     validate documents and build the symbol table, print diagnostics
  symbols   like check, then write the symbol table (-format, -o, -sqlite)
  dump      print the normalized documents as source
  watch     re-run check on every change below the given paths
  version   print the version
  help      print this help

Paths default to sources.include from classc.yaml / classc.toml, found by
walking up from the working directory. Run "classc <command> -h" for flags.
`

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(exitUsage)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if handleHelp(args, stdout) {
		return exitOK
	}
	if handleVersion(args, stdout) {
		return exitOK
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "symbols":
		return runSymbols(args[1:], stdout, stderr)
	case "dump":
		return runDump(args[1:], stdout, stderr)
	case "watch":
		return runWatch(args[1:], stdout, stderr)
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
	return exitUsage
}

func handleHelp(args []string, stdout io.Writer) bool {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return true
	}
	if args[0] != "-help" && args[0] != "--help" && args[0] != "-h" && args[0] != "help" {
		return false
	}
	fmt.Fprint(stdout, usage)
	return true
}

func handleVersion(args []string, stdout io.Writer) bool {
	if args[0] != "version" && args[0] != "-version" && args[0] != "--version" {
		return false
	}
	fmt.Fprintf(stdout, "classc %s\n", config.Version)
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(stdout, "built with %s\n", info.GoVersion)
	}
	return true
}
