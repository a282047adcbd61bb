package initCmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
)

// abort ends init without writing anything. Prompts only fail if the
// user cancelled them (ctrl+c, ctrl+d) or there is no terminal
func abort(err error) {
	if !errors.Is(err, promptui.ErrInterrupt) && !errors.Is(err, promptui.ErrEOF) {
		fmt.Println(err)
	}
	fmt.Println("Aborting")
	os.Exit(1)
}

func selectPrompt(prompt *promptui.Select) string {
	_, res, err := prompt.Run()
	if err != nil {
		abort(err)
	}
	return res
}

func stringPrompt(prompt *promptui.Prompt) string {
	res, err := prompt.Run()
	if err != nil {
		abort(err)
	}
	return res
}

// boolPrompt asks a yes/no question. Everything but "y" is a no
func boolPrompt(prompt *promptui.Prompt) bool {
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true
	case errors.Is(err, promptui.ErrAbort):
		return false
	}
	abort(err)
	return false
}
