package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/govalues/apint/internal/interp"
)

var (
	// Global flags
	verbose   bool
	logFormat string
	noColor   bool
	showStats bool
)

var rootCmd = &cobra.Command{
	Use:   "apint [input [output]]",
	Short: "Run arbitrary-precision integer register programs",
	Long: `apint executes a register-machine program over arbitrary-precision
unsigned integers. The program is read from input (standard input if omitted
or "-") and its output is written to output (standard output if omitted
or "-").

A program starts with the number of registers, followed by one
initialization block per register (UINT64, HEX_STRING or CLONE, with the
argument on the next line) and a list of operations ending with END:

  DUMP                 print every register in hexadecimal
  SHL dst src k        dst = src << k
  ADD dst a b          dst = a + b
  MUL_UINT64 dst a k   dst = a * k
  MUL_APINT dst a b    dst = a * b
  POW dst a k          dst = a ** k
  CMP a b              print -1, 0 or 1`,
	Args:          cobra.MaximumNArgs(2),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runProgram,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on standard error")
	rootCmd.PersistentFlags().
		StringVar(&logFormat, "log-format", logFormatText, "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().BoolVar(&showStats, "stats", false, "Print run statistics as YAML on standard error")
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func runProgram(cmd *cobra.Command, args []string) (err error) {
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if len(args) > 1 && args[1] != "-" {
		f, cerr := os.Create(args[1])
		if cerr != nil {
			return fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		out = f
	}

	logger.Debug("running program", "input", nameOr(args, 0, "stdin"), "output", nameOr(args, 1, "stdout"))
	stats, err := interp.New(interp.WithLogger(logger)).Run(cmd.Context(), in, out)
	if err != nil {
		logger.Debug("program failed", "commands", stats.Commands, "error", err)
		return err
	}
	logger.Debug("program finished",
		"registers", stats.Registers,
		"commands", stats.Commands,
		"by_command", stats.ByCommand,
	)
	if showStats {
		return printStats(cmd.ErrOrStderr(), stats)
	}
	return nil
}

// printStats writes stats to w as a YAML document.
func printStats(w io.Writer, stats interp.Stats) error {
	out, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// nameOr returns args[i], or def if there is no such argument.
func nameOr(args []string, i int, def string) string {
	if i < len(args) && args[i] != "-" {
		return args[i]
	}
	return def
}
