package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dekarrin/nagi/internal/input"
	"github.com/dekarrin/nagi/internal/nagifront"
)

// lineReader is the subset of input.DirectLineReader and
// input.InteractiveLineReader that runREPL needs.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

// runREPL starts an interactive session that tokenizes, shapes, and
// parses one line at a time against the nagilang grammar, printing
// either the assembled AST or the error that line produced. Input is read
// through readline when stdin is a TTY, and read directly otherwise so the
// REPL can also be driven by piped or scripted input.
func runREPL() error {
	var reader lineReader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		ilr, err := input.NewInteractiveReader("nagi> ")
		if err != nil {
			return fmt.Errorf("building line reader: %w", err)
		}
		reader = ilr
	} else {
		reader = input.NewDirectReader(os.Stdin)
	}
	defer reader.Close()

	d, err := nagifront.NewDriver()
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	for {
		line, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		res, err := d.Parse([]byte(line))
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if res.Cursor.Position() != res.Cursor.Len() {
			fmt.Printf("incomplete parse: stopped at token %d of %d\n", res.Cursor.Position(), res.Cursor.Len())
			continue
		}
		fmt.Printf("%+v\n", res.AST)
	}
}
