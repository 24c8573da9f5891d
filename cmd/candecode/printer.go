package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	yellow = color.New(color.FgYellow).SprintfFunc()
	red    = color.New(color.FgRed).SprintfFunc()
	green  = color.New(color.FgGreen).SprintfFunc()
)

type printer struct {
	out    io.Writer
	format string
}

func newPrinter(out io.Writer, format string) *printer {
	return &printer{out: out, format: format}
}

func (p *printer) print(rec record) error {
	var b []byte
	var err error
	switch p.format {
	case "json":
		b, err = json.Marshal(rec)
	case "yaml":
		b, err = yaml.Marshal(rec)
		b = append([]byte("---\n"), bytes.TrimRight(b, "\n")...)
	case "hex":
		b = []byte(rec.hex())
	default:
		b = []byte(rec.text())
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%s\n", b)
	return err
}

// comment prints diagnostic line. Diagnostic lines start with `# ` so that output can be piped back as input.
func (p *printer) comment(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "# %s\n", fmt.Sprintf(format, args...))
}

// printError prints error as diagnostic line. In text format error is highlighted.
func (p *printer) printError(err error) {
	line := fmt.Sprintf("Error %v", err)
	if p.format == "text" {
		line = red("%s", line)
	}
	fmt.Fprintf(p.out, "# %s\n", line)
}
