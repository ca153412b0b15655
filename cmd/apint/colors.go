package main

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora/v4"
)

func colorizeError(message string) string {
	au := aurora.New(aurora.WithColors(!noColor))
	return au.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

// printError writes err to w, highlighted unless colors are disabled.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, colorizeError("Error: "+err.Error()))
}
