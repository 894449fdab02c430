package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteText writes one frame line per line of output.
func WriteText(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return ErrNothingToExport
	}
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveText writes lines into filename.
func SaveText(filename string, lines []string) error {
	if len(lines) == 0 {
		return ErrNothingToExport
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	if err := WriteText(file, lines); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return file.Close()
}
