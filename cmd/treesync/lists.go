package main

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kyuff/treesync/sortedlist"
)

// maxLineSize bounds a single path in a listing.
const maxLineSize = 1 << 20

var errStdinTwice = errors.New(`only one listing can be read from standard input ("-")`)

// readLists reads the two listings a command compares.
func readLists(name1, name2 string, stdin io.Reader) ([]string, []string, error) {
	if name1 == "-" && name2 == "-" {
		return nil, nil, errStdinTwice
	}

	list1, err := readList(name1, stdin)
	if err != nil {
		return nil, nil, err
	}

	list2, err := readList(name2, stdin)
	if err != nil {
		return nil, nil, err
	}

	return list1, list2, nil
}

// readList reads one path per line. Blank lines are skipped and "-" reads
// standard input.
func readList(name string, stdin io.Reader) ([]string, error) {
	var r = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var (
		lines   []string
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if err := sortedlist.CheckSorted(lines, cmp.Less[string]); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return lines, nil
}
