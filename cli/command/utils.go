package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrPromptTerminated is returned when the user terminates the CLI
// while a prompt is waiting for input.
var ErrPromptTerminated = errors.New("prompt terminated")

// PromptForInput requests input from the user.
//
// When the prompt returns an error, the caller should propagate the error up
// the stack and close the io.Reader used for the prompt which will prevent the
// background goroutine from blocking indefinitely.
func PromptForInput(ctx context.Context, in io.Reader, out io.Writer, message string) (string, error) {
	_, _ = fmt.Fprint(out, message)

	result := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			result <- strings.TrimSpace(scanner.Text())
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(out, "")
		return "", ErrPromptTerminated
	case r := <-result:
		return r, nil
	}
}

// PromptForConfirmation asks a yes/no question and reports whether the
// user answered yes. Empty input counts as no.
func PromptForConfirmation(ctx context.Context, in io.Reader, out io.Writer, message string) (bool, error) {
	answer, err := PromptForInput(ctx, in, out, message+" [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
