/*
Garfish starts an interactive equation session.

It reads equations from stdin one line at a time, analyzes each against the
equation grammar, and prints the resulting equation along with the identifiers
it mentions. If grounding addresses are given, each equation is also grounded
and printed in its absolute form.

Usage:

	garfish [flags]

The flags are:

	-v, --version
		Give the current version of garfish and then exit.

	-d, --dialect [FILE]
		Load the equation dialect from the given TOML file.

	--strict-or
		Read the OR connective as a true disjunction instead of the default
		conjunctive reading. Overrides the dialect file.

	--up [ADDRESS]
	--down [ADDRESS]
		Ground each equation with the given addresses bound to the %f and %g
		metavariables. Both must be given for grounding to occur.

	--direct
		Force reading directly from stdin instead of going through GNU
		readline based routines even if launched in a tty.

Once a session has started, each input line is analyzed as an equation. Type
"GRAMMAR" to print the grammar's rule table, "NOT" followed by an equation to
see its negation applied, or "QUIT" to exit.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/garfish"
	"github.com/dekarrin/garfish/eqn"
	"github.com/dekarrin/garfish/internal/input"
	"github.com/dekarrin/garfish/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue setting up the analyzer.
	ExitInitError
)

var (
	returnCode = ExitSuccess

	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of garfish and then exit.")
	flagDialect  = pflag.StringP("dialect", "d", "", "Load the equation dialect from the given TOML file.")
	flagStrictOr = pflag.Bool("strict-or", false, "Read OR as a true disjunction.")
	flagUp       = pflag.String("up", "", "Ground equations with this address bound to %f.")
	flagDown     = pflag.String("down", "", "Ground equations with this address bound to %g.")
	flagDirect   = pflag.Bool("direct", false, "Force reading directly from stdin instead of using readline.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var d eqn.Dialect
	if *flagDialect != "" {
		var err error
		d, err = eqn.LoadDialectFile(*flagDialect)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}
	if *flagStrictOr {
		d.StrictDisjunction = true
	}

	an := &garfish.Analyzer[eqn.Equation[eqn.Relative]]{Root: eqn.Language(d)}

	// surface configuration errors before entering the session
	if _, err := an.Grammar(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	rd, err := makeReader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
	defer rd.Close()

	if err := runSession(an, rd); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}

func makeReader() (input.Reader, error) {
	if *flagDirect {
		return input.NewDirectReader(os.Stdin), nil
	}
	return input.NewInteractiveReader("> ")
}

func runSession(an *garfish.Analyzer[eqn.Equation[eqn.Relative]], rd input.Reader) error {
	for {
		line, err := rd.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if line == "QUIT" {
			return nil
		}
		if line == "GRAMMAR" {
			g, err := an.Grammar()
			if err != nil {
				return err
			}
			fmt.Println(g)
			continue
		}

		eq, err := an.Analyze(line)
		if err != nil {
			if errors.Is(err, garfish.ErrNoParse) || errors.Is(err, garfish.ErrNoInterpretation) {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				continue
			}
			return err
		}

		fmt.Println(eq)
		fmt.Printf("identifiers: %s\n", eq.Identifiers().StringOrdered())

		if *flagUp != "" && *flagDown != "" {
			ground := eqn.Ground(eq, eqn.Absolute{Name: *flagUp}, eqn.Absolute{Name: *flagDown})
			fmt.Printf("grounded: %s\n", ground)
		}
	}
}
