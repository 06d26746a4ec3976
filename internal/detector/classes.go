package detector

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultClassNames is the class list of the bundled safety-equipment model.
// Class names are arbitrary strings; access decisions match them by
// case-insensitive substring, so any helmet-ish or vest-ish name works.
var DefaultClassNames = []string{
	"helmet",
	"vest",
	"person",
	"gloves",
	"boots",
}

// LoadClassNames reads a newline-separated class list from path.
// Blank lines and surrounding whitespace are ignored.
func LoadClassNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class names: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read class names: %w", err)
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("class names file %s is empty", path)
	}

	return names, nil
}
