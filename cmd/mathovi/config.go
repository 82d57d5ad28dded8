package main

import (
	"io"
	"io/ioutil"
	"os"

	errors "gopkg.in/src-d/go-errors.v1"
	yaml "gopkg.in/yaml.v2"

	"github.com/zephyrtronium/mathovi"
)

// ErrConfig is returned when a configuration file cannot be loaded.
var ErrConfig = errors.NewKind("invalid config %s: %s")

// defaultPreamble and defaultPostamble wrap the fragments into a standalone
// one-page document.
const (
	defaultPreamble = `\documentclass{article}

\pagestyle{empty}

\usepackage[a6paper, margin={2cm,2cm},twocolumn, layouthoffset=0pt]{geometry}

\usepackage[utf8]{inputenc}
\usepackage{lmodern}
\usepackage{amssymb}

\begin{document}
`
	defaultPostamble = `
\end{document}
`
)

// Config controls how statements are parsed and how fragments are written.
type Config struct {
	// Preamble is written before the first fragment of a document.
	Preamble string `yaml:"preamble"`
	// Postamble is written after the last fragment of a document.
	Postamble string `yaml:"postamble"`
	// Open and Close delimit each fragment in math mode.
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
	// LeftAssociative groups operator chains from the left.
	LeftAssociative bool `yaml:"left_associative"`
	// Fragments writes bare fragments, one per line, instead of a document.
	Fragments bool `yaml:"fragments"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Preamble:  defaultPreamble,
		Postamble: defaultPostamble,
		Open:      "$",
		Close:     "$",
	}
}

// LoadConfig reads a YAML configuration. Keys that are absent keep their
// default values. Unknown keys are an error.
func LoadConfig(name string, r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return cfg, ErrConfig.New(name, err)
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, ErrConfig.New(name, err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration from a file.
func LoadConfigFile(name string) (Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return DefaultConfig(), ErrConfig.New(name, err)
	}
	defer f.Close()
	return LoadConfig(name, f)
}

// ParseOptions returns the parse options the configuration implies.
func (c Config) ParseOptions() []mathovi.ParseOption {
	if c.LeftAssociative {
		return []mathovi.ParseOption{mathovi.LeftAssociative()}
	}
	return nil
}
