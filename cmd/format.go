package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatMarkdown = "md"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

var formats = []string{formatMarkdown, formatJSON, formatYAML}

// outputFlag is the -format flag shared by the report commands.
type outputFlag struct {
	format string
}

func (o *outputFlag) SetFlags(f *flag.FlagSet) {
	f.StringVar(&o.format, "format", formatMarkdown, "output format: md, json or yaml")
}

func (o *outputFlag) validate() error {
	switch o.format {
	case formatMarkdown, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q, want one of %v", o.format, formats)
	}
}

// print writes v in the selected format, markdown being produced lazily.
func (o *outputFlag) print(v any, markdown func() string) error {
	switch o.format {
	case formatJSON:
		return encodeJSON(stdout, v)
	case formatYAML:
		return encodeYAML(stdout, v)
	default:
		printMarkdown(markdown())
		return nil
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
