// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"code.hybscloud.com/kernel"
	"code.hybscloud.com/kernel/internal/driver"
	"code.hybscloud.com/kernel/internal/report"
)

func main() {
	var ext, noColor, debug bool

	rootCmd := &cobra.Command{
		Use:           "kernel",
		Short:         "Interpret Kernel, a Scheme-like fexpr language",
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&ext, "ext", false, "build the extended environment (extension.k) instead of the standard one")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "trace eval, plug and abnormal-pass hook events to stderr")

	interpretCmd := &cobra.Command{
		Use:   "interpret <source-file>",
		Short: "Evaluate a Kernel source file and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpret(args[0], ext, noColor, debug)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(ext, noColor, debug)
		},
	}

	rootCmd.AddCommand(interpretCmd, replCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newDriver builds a standard or extended driver, wiring its
// BaseErrorCont to print through a report.Reporter and record whether
// any error was seen, so the caller can pick an exit code.
func newDriver(ext, noColor bool) (*driver.Driver, *bool) {
	failed := false
	reporter := report.New(os.Stderr, noColor)
	onError := func(eo *kernel.ErrorObject) {
		failed = true
		reporter.Report(eo)
	}
	var d *driver.Driver
	var err error
	if ext {
		d, err = driver.NewExtended(onError)
	} else {
		d, err = driver.NewStandard(onError)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return d, &failed
}

func runInterpret(path string, ext, noColor, debug bool) error {
	d, failed := newDriver(ext, noColor)
	if debug {
		d.Hooks = activeDebugHooks()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := d.EvalSource(path, string(src)); err != nil {
		return err
	}
	if *failed {
		os.Exit(1)
	}
	return nil
}

func runRepl(ext, noColor, debug bool) error {
	d, failed := newDriver(ext, noColor)
	if debug {
		d.Hooks = activeDebugHooks()
	}
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, "> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(os.Stdout, "> ")
			continue
		}
		result, err := d.EvalSource("<repl>", line)
		*failed = false
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stdout, kernel.String(result))
		}
		fmt.Fprint(os.Stdout, "> ")
	}
	fmt.Fprintln(os.Stdout)
	return scanner.Err()
}

func activeDebugHooks() *kernel.Hooks {
	return &kernel.Hooks{
		OnEval: func(expr kernel.Value, env *kernel.Environment, cont kernel.Cont) {
			fmt.Fprintf(os.Stderr, "eval: %s\n", kernel.String(expr))
		},
		OnPlugReduce: func(val kernel.Value, cont kernel.Cont) {
			fmt.Fprintf(os.Stderr, "plug: %s -> %T\n", kernel.String(val), cont)
		},
		OnAbnormalPass: func(val kernel.Value, src, dst kernel.Cont) {
			fmt.Fprintf(os.Stderr, "abnormal-pass: %s\n", kernel.String(val))
		},
	}
}
