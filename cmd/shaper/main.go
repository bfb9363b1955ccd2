package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	shaper "github.com/shaper-go/shaper"
	"github.com/shaper-go/shaper/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "shaper CLI\n\nUsage:\n  shaper check [-format json|yaml] [file...]\n\nNotes:\n  - Verifies documents are well-formed; reads stdin when no files are given.\n  - The format is inferred from the file extension unless -format is set.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var format string
	fs.StringVar(&format, "format", "", "input format: json or yaml (default: by extension)")
	_ = fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
			os.Exit(1)
		}
		os.Exit(check("stdin", data, pickFormat(format, "")))
	}
	status := 0
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", f, err)
			status = 1
			continue
		}
		if check(f, data, pickFormat(format, f)) != 0 {
			status = 1
		}
	}
	os.Exit(status)
}

func pickFormat(flagValue, file string) string {
	if flagValue != "" {
		return flagValue
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func check(name string, data []byte, format string) int {
	var err error
	switch format {
	case "yaml":
		_, err = source.DecodeYAML(data)
	default:
		_, err = source.DecodeJSON(data)
	}
	if err == nil {
		fmt.Printf("%s: ok\n", name)
		return 0
	}
	iss, ok := shaper.AsIssues(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "%s:\n%s\n", name, shaper.Format(iss))
	return 1
}
