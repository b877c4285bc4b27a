package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/term"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// stdin is the prompt input; tests replace it.
var stdin io.Reader = os.Stdin

var (
	promptSrc io.Reader
	promptIn  *bufio.Reader
)

// promptReader buffers stdin once so consecutive prompts share read-ahead.
func promptReader() *bufio.Reader {
	if promptIn == nil || promptSrc != stdin {
		promptSrc = stdin
		promptIn = bufio.NewReader(stdin)
	}
	return promptIn
}

// promptRequired prompts until a non-empty value is provided.
// Input is echoed and trimmed; use promptPassword for secrets.
func promptRequired(label string) (string, error) {
	reader := promptReader()
	for {
		fmt.Printf("%s: ", label)
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			return input, nil
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		fmt.Println("  Value required")
	}
}

// promptPassword reads a secret without echo when stdin is a terminal.
// The value is taken verbatim, without trimming. An empty value is
// returned only when allowEmpty is set; otherwise the prompt repeats.
func promptPassword(label string, allowEmpty bool) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		value, err := readSecret()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		if value != "" || allowEmpty {
			return value, nil
		}
		fmt.Println("  Value required")
	}
}

func readSecret() (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Println()
		return string(b), err
	}

	line, err := promptReader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
