// Command uvci-graph reads one UVCI per line and writes the Cypher statements
// linking every decodable national certificate to its country, issuer,
// vaccination month and reissues.
//
//	uvci-graph covid_uvci.txt graph_cypher.txt
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"uvci/internal/uvci/export"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "USAGE:")
		fmt.Fprintln(stderr, "    uvci-graph <UVCI input file> <Cypher output file>")
		return 2
	}
	inPath, outPath := args[0], args[1]

	lines, err := readLines(inPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	stmts := export.GraphBatch(lines)
	if err := os.WriteFile(outPath, []byte(export.RenderGraph(stmts, true)), 0o644); err != nil {
		fmt.Fprintf(stderr, "error: couldn't write %s: %v\n", outPath, err)
		return 1
	}

	fmt.Fprintf(stdout, "successfully wrote %d statements to %s\n", len(stmts), outPath)
	return 0
}

// readLines returns the lines of path without their line endings. Lines may
// be of any length.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("couldn't read %s: %w", path, err)
		}
	}
}
