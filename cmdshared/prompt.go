package cmdshared

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"
)

// ErrCancelled is returned when the user cancels a menu
var ErrCancelled = errors.New("cancelled")

var stdin = bufio.NewReader(os.Stdin)

func PromptYesNo(prompt string) bool {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		fmt.Println("Y (non-interactive mode)")
		return true
	}
	answer, err := stdin.ReadString('\n')
	if err != nil {
		fmt.Printf("Failed to prompt user: %v\n", err)
		os.Exit(1)
	}

	ansNormal := strings.ToLower(strings.TrimSpace(answer))
	if len(ansNormal) > 0 && ansNormal[0] == 'n' {
		return false
	}
	return true
}

// ReadValue prompts for a line of input, returning def when the input is empty
func ReadValue(prompt string, def string) string {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		fmt.Printf("%s\n", def)
		return def
	}
	value, err := stdin.ReadString('\n')
	if err != nil {
		fmt.Printf("Error reading input: %s\n", err)
		os.Exit(1)
	}
	// Trims both CR and LF
	value = strings.TrimSpace(value)
	if len(value) > 0 {
		return value
	}
	return def
}

// Choose shows a numbered menu and returns the index of the chosen option.
// A trailing "Cancel" option returns ErrCancelled; in non-interactive mode def is chosen.
func Choose(question string, options []string, def int) (int, error) {
	if viper.GetBool("non-interactive") {
		fmt.Printf("%s %s (non-interactive mode)\n", question, options[def])
		return def, nil
	}
	chosen := -1
	menu := wmenu.NewMenu(question)
	menu.LoopOnInvalid()
	for i, o := range options {
		menu.Option(o, i, i == def, nil)
	}
	menu.Option("Cancel", nil, false, nil)
	menu.Action(func(opts []wmenu.Opt) error {
		if len(opts) != 1 || opts[0].Value == nil {
			return ErrCancelled
		}
		i, ok := opts[0].Value.(int)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		chosen = i
		return nil
	})
	if err := menu.Run(); err != nil {
		return -1, err
	}
	return chosen, nil
}
