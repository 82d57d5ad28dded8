package main

import (
	"bufio"
	"io"
)

// writeDocument writes the fragments to w according to cfg. Each fragment is
// wrapped in the math delimiters and placed in its own paragraph, or written
// bare on its own line if cfg.Fragments is set.
func writeDocument(w io.Writer, cfg Config, frags []string) error {
	b := bufio.NewWriter(w)
	if cfg.Fragments {
		for _, f := range frags {
			b.WriteString(f)
			b.WriteByte('\n')
		}
		return b.Flush()
	}
	b.WriteString(cfg.Preamble)
	for i, f := range frags {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(cfg.Open)
		b.WriteString(f)
		b.WriteString(cfg.Close)
	}
	b.WriteString(cfg.Postamble)
	return b.Flush()
}
