package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptForYesNo prompts the user for a yes/no question
// Returns true for yes, false for no, or the default value if no input
func PromptForYesNo(out io.Writer, reader *bufio.Reader, promptText string, defaultValue bool) bool {
	label := buildYesNoLabel(defaultValue)
	fmt.Fprintf(out, "%s [%s]: ", promptText, label)

	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))

	if line == "" {
		return defaultValue
	}

	return isAffirmativeResponse(line)
}

// PromptForConfirmation asks the user to confirm a destructive action.
// It defaults to no.
func PromptForConfirmation(in io.Reader, out io.Writer, question string) bool {
	return PromptForYesNo(out, bufio.NewReader(in), question, false)
}

func buildYesNoLabel(defaultIsYes bool) string {
	if defaultIsYes {
		return "Y/n"
	}
	return "y/N"
}

func isAffirmativeResponse(response string) bool {
	return response == "y" || response == "yes"
}
