// Command safecalc evaluates sandboxed arithmetic expressions.
//
// With arguments, each argument is one expression and results go to stdout.
// With piped input, each line is one expression. With neither, safecalc
// starts an interactive calculator.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/safecalc/safecalc"
)

func main() {
	log.SetFlags(0)
	var (
		digits int
		quiet  bool
	)
	flag.IntVar(&digits, "digits", 12, "significant digits for float results")
	flag.BoolVar(&quiet, "q", false, "print bare results without echoing the expression")
	flag.Parse()
	if digits <= 0 {
		log.Fatalf("digits (%d) must be positive", digits)
	}

	if flag.NArg() > 0 {
		code := 0
		for _, arg := range flag.Args() {
			if !evalLine(arg, digits, quiet) {
				code = 1
			}
		}
		os.Exit(code)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if _, err := tea.NewProgram(newModel(digits), tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Piped input: one expression per line, blank lines skipped.
	code := 0
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !evalLine(line, digits, quiet) {
			code = 1
		}
	}
	if err := sc.Err(); err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

// evalLine evaluates one expression and prints the result or the error.
func evalLine(src string, digits int, quiet bool) bool {
	n, err := safecalc.Evaluate(src)
	if err != nil {
		kind, _ := safecalc.Kind(err)
		fmt.Fprintf(os.Stderr, "%s: %v: %v\n", src, kind, err)
		return false
	}
	if quiet {
		fmt.Println(n.Format(digits))
	} else {
		fmt.Printf("%s = %s\n", src, n.Format(digits))
	}
	return true
}
