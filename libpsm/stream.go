package libpsm

import (
	"bufio"
	"io"
	"strings"

	"github.com/2x3systems/psmiles/psm"
	"github.com/pkg/errors"
)

// StreamInputs parses each input in order and streams the result.
func StreamInputs(inputs []string, opts psm.ParseOpts) *psm.StructureStream {
	next := &psm.StructureStream{
		Outlet: make(chan psm.Structure, 1),
	}

	go func() {
		for _, input := range inputs {
			next.Outlet <- New(input, opts)
		}
		next.Close()
	}()

	return next
}

// ReadInputs returns the non-blank lines of r, with surrounding whitespace trimmed.
// Lines starting with "//" are comments.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "//") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read inputs")
	}
	return inputs, nil
}
