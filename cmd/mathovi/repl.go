package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/mathovi"
)

const (
	historyFile = ".mathovi_history"
	promptMain  = "tex> "
	promptCont  = "...> "
)

// repl converts statements read interactively until EOF. Errors are reported
// without ending the session. The result is the exit status.
func repl(cfg Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
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

	opts := cfg.ParseOptions()
	for {
		src, more := readStatement(ln, opts)
		if strings.TrimSpace(src) != "" {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
			emit(os.Stdout, os.Stderr, src, opts)
		}
		if !more {
			fmt.Println()
			return 0
		}
	}
}

// prompter reads one line of input. *liner.State is a prompter.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readStatement reads lines until they form a complete input. The second
// result is false at the end of input, in which case the first holds any
// partial statement read before it.
func readStatement(ln prompter, opts []mathovi.ParseOption) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return b.String(), false
		}
		if err != nil {
			// Aborted with ^C. Discard the partial input.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String(), opts) {
			return b.String(), true
		}
	}
}

// emit converts src and writes one fragment per line to w, or the error to
// errw.
func emit(w, errw io.Writer, src string, opts []mathovi.ParseOption) {
	frags, err := mathovi.Convert(src, opts...)
	if err != nil {
		fmt.Fprintln(errw, err)
		return
	}
	for _, f := range frags {
		fmt.Fprintln(w, f)
	}
	logrus.WithField("fragments", len(frags)).Debug("converted")
}
// incomplete reports whether src fails to parse only because it ends too
// early, so that more input could complete it.
func incomplete(src string, opts []mathovi.ParseOption) bool {
	if strings.TrimSpace(src) == "" {
		return false
	}
	_, err := mathovi.ParseString(src, opts...)
	var eof *mathovi.UnexpectedEOFError
	return errors.As(err, &eof)
}
