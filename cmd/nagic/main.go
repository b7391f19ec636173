/*
Nagic tokenizes and parses nagilang source files against the packrat
engine, printing the assembled AST or the token stream.

Usage:

	nagic [flags] FILE

The flags are:

	-v, --version
		Give the current version of nagic and then exit.

	-s, --start RULE
		Parse from the given rule instead of the grammar's default start
		rule.

	--dump-tokens
		Print the shaped token stream instead of parsing.

	--dump-ast
		Print the assembled AST after a successful parse.

	--verbose
		Print per-run diagnostics (token counts, timing, run ID) to
		stderr while parsing.

Running "nagic repl" instead of giving a file starts an interactive
session that parses one line at a time.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/nagi/internal/ebnf/lex"
	"github.com/dekarrin/nagi/internal/nagifront"
	"github.com/dekarrin/nagi/internal/nagilang"
	"github.com/dekarrin/nagi/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad arguments were given.
	ExitUsageError

	// ExitParseError indicates the source file failed to lex or parse.
	ExitParseError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Give the version info")
	startRule   = pflag.StringP("start", "s", "", "Parse from the given rule instead of the grammar's default start rule")
	dumpTokens  = pflag.Bool("dump-tokens", false, "Print the shaped token stream instead of parsing")
	dumpAST     = pflag.Bool("dump-ast", false, "Print the assembled AST after a successful parse")
	verbose     = pflag.Bool("verbose", false, "Print per-run diagnostics to stderr while parsing")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) == 1 && args[0] == "repl" {
		if err := runREPL(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitParseError
		}
		return
	}

	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "USAGE: nagic [flags] FILE")
		returnCode = ExitUsageError
		return
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}

	if *dumpTokens {
		dumpTokenStream(src)
		return
	}

	d, err := nagifront.NewDriver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}
	d.Verbose = *verbose

	var res nagifront.Result
	if *startRule != "" {
		res, err = d.ParseRule(src, *startRule)
	} else {
		res, err = d.Parse(src)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, formatSourceError(src, err))
		returnCode = ExitParseError
		return
	}

	if res.Cursor.Position() != res.Cursor.Len() {
		fmt.Fprintf(os.Stderr, "WARNING: trailing input was not consumed (stopped at token %d of %d)\n", res.Cursor.Position(), res.Cursor.Len())
	}

	if *dumpAST {
		fmt.Println(renderAST(res.AST))
	} else {
		fmt.Println("parse OK")
	}
}

func lexOnly(src []byte) (*lex.Cursor[lex.Token], error) {
	return nagilang.Lex(src)
}

func dumpTokenStream(src []byte) {
	cursor, err := lexOnly(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatSourceError(src, err))
		returnCode = ExitParseError
		return
	}
	fmt.Println(renderTokens(cursor.Tokens()))
}
