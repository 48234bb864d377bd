package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PromptAnimalName asks for an animal name on out and reads one line from in.
// Blank input or EOF yields def.
func PromptAnimalName(in io.Reader, out io.Writer, def string) (string, error) {
	if _, err := fmt.Fprintf(out, "Enter a name of an animal (default: %q): ", def); err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("prompt: read input: %w", err)
	}

	if name := strings.TrimSpace(line); name != "" {
		return name, nil
	}
	return def, nil
}
