// wavcue lists the cue point markers of a wav file as CSV lines, one per
// marker. Each line carries the marker offset in seconds from the start of
// the file and, when the file holds broadcast wave metadata, the wall-clock
// time-of-day of the marker. Markers go to stdout so they can be redirected
// to a file; progress and error messages go to stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/wavcue"
)

const usageMessage = "usage: wavcue filename.wav > filename.csv"

var errMissingPath = errors.New("missing path argument")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Fprintln(os.Stderr, usageMessage)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func run(args []string, out, diag io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to process %q - %w", path, err)
	}
	defer file.Close()

	dec := wavcue.NewDecoder(file)
	dec.Diag = diag

	info, err := dec.Decode()
	if err != nil {
		return fmt.Errorf("failed to process %q - %w", path, err)
	}

	for _, mark := range info.Marks() {
		fmt.Fprintln(out, mark)
	}

	return nil
}
