package maidsweep

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if !isTerminal(os.Stdout) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatUpper returns the string in uppercase
func formatUpper(s string) string {
	return strings.ToUpper(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     formatUpper,
		"boldUpper": formatBoldUpper,
	})
}

// printSummary reports a finished run on stderr. Plain output is used when
// stderr is not a terminal so redirected logs stay readable.
func printSummary(cmd *cobra.Command, msg string) {
	if !isTerminal(os.Stderr) {
		cmd.PrintErrln(msg)
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), pterm.Success.Sprintln(msg))
}

// printNotice reports that nothing ran
func printNotice(cmd *cobra.Command, msg string) {
	if !isTerminal(os.Stderr) {
		cmd.PrintErrln(msg)
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), pterm.Info.Sprintln(msg))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
