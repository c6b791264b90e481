// Package wordlist reads candidate words and writes result lines, one per
// line. The path "-" means stdin or stdout.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

const Stdio = "-"

// Read returns every line of r with trailing whitespace removed, in order.
// Blank lines are kept; the canonicalizer drops them. Lines have no length
// limit so an oversized line is rejected by the canonicalizer, not here.
func Read(r io.Reader) ([]string, error) {
	words := make([]string, 0)
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')

		if line != "" {
			words = append(words, strings.TrimRightFunc(line, unicode.IsSpace))
		}

		if errors.Is(err, io.EOF) {
			return words, nil
		}

		if err != nil {
			return nil, fmt.Errorf("reading words: %w", err)
		}
	}
}

func ReadFile(path string) ([]string, error) {
	if path == Stdio {
		return Read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

func Write(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)

	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}

		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func WriteFile(path string, lines []string) error {
	if path == Stdio {
		return Write(os.Stdout, lines)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, lines); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
