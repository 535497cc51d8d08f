package records

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
)

const tabWidth = 4

// OutlineLoader handles indented plain-text outlines: one item per line,
// deeper indentation nests under the closest shallower line. Leading "- "
// or "* " bullets are dropped.
type OutlineLoader struct{}

func (l *OutlineLoader) Load(r io.Reader, filename string) ([]pine.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	type stackEntry struct {
		id     int64
		indent int
	}
	var stack []stackEntry
	var seq sequence

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := indentOf(line)
		name := strings.TrimSpace(line)
		name = strings.TrimPrefix(name, "- ")
		name = strings.TrimPrefix(name, "* ")

		// Pop stack until the top is shallower than this line.
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := pine.RootID
		if len(stack) > 0 {
			parent = stack[len(stack)-1].id
		}
		id := seq.add(parent, strings.TrimSpace(name))
		stack = append(stack, stackEntry{id: id, indent: indent})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return seq.records, nil
}

func indentOf(line string) int {
	n := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			n++
		case '\t':
			n += tabWidth
		default:
			return n
		}
	}
	return n
}
