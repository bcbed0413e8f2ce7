// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"blc/internal/diag"
	"blc/internal/ioloop"
	"blc/internal/resolve"
	"blc/internal/syntax"
)

const PROMPT = ">> "

// Start reads one program at a time from in, each terminated by a
// blank line or end of input, and runs it to completion. A program's
// own IO effects ($get/$put/$eput) read and write the process's real
// stdin and stdout, not the source text being read from in — so a
// REPL session run interactively has the program's bit stream and the
// next program's source text sharing one terminal, exactly as typing
// commands and a running program's own prompts share a terminal in
// any other REPL.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)
	var lines []string

	flush := func() {
		src := strings.Join(lines, "\n")
		lines = lines[:0]
		if strings.TrimSpace(src) == "" {
			return
		}
		runOne(src)
	}

	for {
		fmt.Print(PROMPT)
		if !scanner.Scan() {
			flush()
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
}

func runOne(src string) {
	prog, err := syntax.ParseSource("repl", src)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}

	root, err := resolve.Resolve("repl", prog)
	if err != nil {
		fmt.Println("resolve error:", err)
		return
	}

	if err := ioloop.Run(root, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if re, ok := err.(*diag.RuntimeError); ok {
			fmt.Println("runtime error:", re.Message)
		} else {
			fmt.Println("error:", err)
		}
	}
}
