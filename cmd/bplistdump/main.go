// Command bplistdump is the command-line front end for the forensic
// bplist decoder: point it at a file, optionally at an offset where a
// plist is embedded inside a larger container, and it prints the parsed
// tree. Corruption is reported as a warning, never as a failure — only an
// unrecoverable input (bplist.FormatError) produces a non-zero exit code.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v2"

	"github.com/go-forensics/bplist"
)

type options struct {
	Verbose []bool `short:"v" long:"verbose" description:"add timestamps to log lines; pass twice for microsecond timestamps and source locations"`
	Format  string `short:"f" long:"format" choice:"text" choice:"json" choice:"yaml" default:"text" description:"output encoding"`
	Offset  int64  `short:"o" long:"offset" default:"0" description:"byte offset at which to start scanning for a plist"`

	Positional struct {
		Plist string `positional-arg-name:"plist" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	configureLogging(opts)

	f, err := os.Open(opts.Positional.Plist)
	if err != nil {
		bail(err)
	}
	defer f.Close()

	var (
		val     bplist.Value
		corrupt bool
		readErr error
	)
	if opts.Offset != 0 {
		val, corrupt, readErr = bplist.ReadPlistAtReport(f, opts.Offset)
	} else {
		val, corrupt, readErr = bplist.ReadPlistReport(f)
	}
	if readErr != nil {
		bail(readErr)
	}

	if corrupt {
		log.Printf("%s LOOKS CORRUPTED. You might not obtain all data!", opts.Positional.Plist)
	}

	if err := render(os.Stdout, val, opts.Format); err != nil {
		bail(err)
	}
}

func configureLogging(opts options) {
	switch len(opts.Verbose) {
	case 0:
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	case 1:
		log.SetFlags(log.Ltime)
		log.Printf("debug logging enabled for %s", opts.Positional.Plist)
	default:
		log.SetFlags(log.Lmicroseconds | log.Lshortfile)
		log.Printf("ultra-verbose tracing enabled for %s", opts.Positional.Plist)
	}
}

func render(w io.Writer, val bplist.Value, format string) error {
	tree := val.Render()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case "yaml":
		out, err := yaml.Marshal(tree)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		_, err := fmt.Fprintf(w, "%#v\n", tree)
		return err
	}
}

func bail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
