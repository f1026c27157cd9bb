package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"slipway/internal/config"
	"slipway/internal/deploy"
)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// selectTarget owns the terminal until a valid, confirmed choice is made.
// The queue choice needs no confirmation; the live choice requires an
// explicit "y", and anything else loops back to target selection.
func selectTarget(in io.Reader, out io.Writer, cfg *config.Config) (deploy.Target, error) {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintln(out, "Select publish target:")
		fmt.Fprintln(out, "  1) queue - stage for the deployment agent")
		fmt.Fprintln(out, "  2) live  - publish immediately to the live site")
		fmt.Fprint(out, "Choice [1/2]: ")

		choice, err := readLine(reader)
		if err != nil {
			return deploy.Target{}, fmt.Errorf("read target selection: %w", err)
		}

		switch choice {
		case "1":
			return deploy.QueueTarget(cfg), nil
		case "2":
			fmt.Fprint(out, "This takes the live site offline during the swap. Proceed? [y/N]: ")
			confirm, err := readLine(reader)
			if err != nil {
				return deploy.Target{}, fmt.Errorf("read confirmation: %w", err)
			}
			if confirm == "y" {
				return deploy.LiveTarget(cfg), nil
			}
			// Not confirmed: back to target selection, not an abort.
		default:
			fmt.Fprintln(out, "Please enter 1 or 2.")
		}
	}
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
