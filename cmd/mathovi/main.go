package main

import (
	"bufio"
	"bytes"
	"flag"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/zephyrtronium/mathovi"
)

var (
	// ErrReadInput is returned when an input cannot be read.
	ErrReadInput = errors.NewKind("cannot read input %s: %s")
	// ErrWriteOutput is returned when the output cannot be written.
	ErrWriteOutput = errors.NewKind("cannot write output %s: %s")
)

// source is one named input text.
type source struct {
	name string
	text string
}

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	var (
		inname, outname, cfgname string
		left, frags, echo        bool
		verbose, interactive     bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&outname, "out", "", "output file (default stdout)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.BoolVar(&left, "left", false, "group chains of operators from the left")
	flag.BoolVar(&frags, "fragments", false, "write bare fragments, one per line, instead of a document")
	flag.BoolVar(&echo, "echo", false, "log parse trees (implies debug logging)")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&interactive, "i", false, "read statements interactively")
	flag.Parse()
	// Trees from -echo are logged at debug level.
	if verbose || echo {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := DefaultConfig()
	if cfgname != "" {
		var err error
		cfg, err = LoadConfigFile(cfgname)
		if err != nil {
			logrus.Fatal(err)
		}
		logrus.WithField("config", cfgname).Debug("loaded configuration")
	}
	// Flags given explicitly override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "left":
			cfg.LeftAssociative = left
		case "fragments":
			cfg.Fragments = frags
		}
	})

	if interactive {
		os.Exit(repl(cfg))
	}

	srcs, err := inputs(inname, flag.Args(), os.Stdin)
	if err != nil {
		logrus.Fatal(err)
	}
	var out []string
	for _, src := range srcs {
		r, err := convert(src, cfg, echo)
		if err != nil {
			logrus.WithField("input", src.name).Fatal(err)
		}
		out = append(out, r...)
	}

	// Build the whole output before touching the destination so that a
	// failure leaves no output file behind.
	var b bytes.Buffer
	if err := writeDocument(&b, cfg, out); err != nil {
		logrus.Fatal(ErrWriteOutput.New(outname, err))
	}
	if err := output(outname, b.Bytes()); err != nil {
		logrus.Fatal(err)
	}
	logrus.WithFields(logrus.Fields{"fragments": len(out), "out": outname}).Debug("done")
}

// convert parses and renders one input.
func convert(src source, cfg Config, echo bool) ([]string, error) {
	exprs, err := mathovi.ParseString(src.text, cfg.ParseOptions()...)
	if err != nil {
		return nil, err
	}
	if echo {
		for i, e := range exprs {
			logrus.WithFields(logrus.Fields{"input": src.name, "statement": i + 1}).Debug(e)
		}
	}
	return mathovi.RenderAll(exprs), nil
}

// inputs collects the sources to convert: the named file, or stdin if the
// name is "-" or if there are no arguments, followed by each argument.
func inputs(inname string, args []string, stdin io.Reader) ([]source, error) {
	var srcs []source
	switch {
	case inname != "" && inname != "-":
		b, err := ioutil.ReadFile(inname)
		if err != nil {
			return nil, ErrReadInput.New(inname, err)
		}
		srcs = append(srcs, source{name: inname, text: string(b)})
	case inname == "-", len(args) == 0:
		b, err := ioutil.ReadAll(bufio.NewReader(stdin))
		if err != nil {
			return nil, ErrReadInput.New("stdin", err)
		}
		srcs = append(srcs, source{name: "stdin", text: string(b)})
	}
	for i, arg := range args {
		srcs = append(srcs, source{name: "arg " + strconv.Itoa(i+1), text: arg})
	}
	return srcs, nil
}

// output writes b to the named file, or to stdout if the name is empty or
// "-".
func output(outname string, b []byte) error {
	if outname == "" || outname == "-" {
		if _, err := os.Stdout.Write(b); err != nil {
			return ErrWriteOutput.New("stdout", err)
		}
		return nil
	}
	if err := ioutil.WriteFile(outname, b, 0644); err != nil {
		return ErrWriteOutput.New(outname, err)
	}
	return nil
}
