// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"blc/internal/diag"
	"blc/internal/eval"
	"blc/internal/ioloop"
	"blc/internal/resolve"
	"blc/internal/syntax"
	"blc/repl"
)

func main() {
	var (
		dump    = flag.Bool("dump", false, "print the full normal form instead of running the IO loop")
		inPath  = flag.String("in", "", "read program input from this file instead of stdin")
		outPath = flag.String("out", "", "write program output to this file instead of stdout")
		verbose = flag.Bool("v", false, "print a success line to stderr on a clean exit")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: blc [flags] <file.blc> [more.blc ...]")
		fmt.Fprintln(os.Stderr, "       blc            (start a REPL reading programs from stdin)")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		repl.Start(os.Stdin)
		return
	}

	source, name, err := readSources(flag.Args())
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	prog, err := syntax.ParseSource(name, source)
	if err != nil {
		reportParseError(source, err)
		os.Exit(1)
	}

	root, err := resolve.Resolve(name, prog)
	if err != nil {
		reportResolveError(source, err)
		os.Exit(1)
	}

	if *dump {
		epoch := &eval.Epoch{}
		fmt.Println(eval.Norm(root, epoch))
		return
	}

	stdin, stdout, closeFiles, err := openStreams(*inPath, *outPath)
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}
	defer closeFiles()

	if err := ioloop.Run(root, stdin, stdout, os.Stderr); err != nil {
		reportRuntimeError(err)
		os.Exit(1)
	}

	if *verbose {
		color.New(color.FgGreen).Fprintf(os.Stderr, "✅ %s finished\n", name)
	}
}

// readSources concatenates every named file's contents (per-file
// programs are not independently meaningful; the loop drives the
// concatenation of every file as one term), returning a combined
// source name for diagnostics.
func readSources(paths []string) (string, string, error) {
	var b strings.Builder
	for i, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", p, err)
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(content)
	}
	return b.String(), strings.Join(paths, "+"), nil
}

func openStreams(inPath, outPath string) (stdin *os.File, stdout *os.File, closeFn func(), err error) {
	stdin, stdout = os.Stdin, os.Stdout
	var toClose []*os.File

	if inPath != "" {
		stdin, err = os.Open(inPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open %s: %w", inPath, err)
		}
		toClose = append(toClose, stdin)
	}
	if outPath != "" {
		stdout, err = os.Create(outPath)
		if err != nil {
			for _, f := range toClose {
				f.Close()
			}
			return nil, nil, nil, fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		toClose = append(toClose, stdout)
	}

	return stdin, stdout, func() {
		for _, f := range toClose {
			f.Close()
		}
	}, nil
}

func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}
	pos := pe.Position()
	reporter := diag.NewReporter(src)
	fmt.Fprint(os.Stderr, reporter.FormatParse(&diag.ParseError{
		Code:    diag.ErrExpectedTerm,
		Message: pe.Message(),
		Position: diag.Position{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Offset:   pos.Offset,
		},
	}))
}

func reportResolveError(src string, err error) {
	pe, ok := err.(*diag.ParseError)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}
	reporter := diag.NewReporter(src)
	fmt.Fprint(os.Stderr, reporter.FormatParse(pe))
}

func reportRuntimeError(err error) {
	re, ok := err.(*diag.RuntimeError)
	if !ok {
		color.Red("%s", err)
		return
	}
	reporter := diag.NewReporter("")
	fmt.Fprint(os.Stderr, reporter.FormatRuntime(re))
}
