// Package shell locates the command interpreter used to run exec templates.
package shell

import (
	"os"

	"github.com/arthur-debert/maidsweep/pkg/errors"
)

// Shell is an interpreter and the flag that makes it run a command string
type Shell struct {
	Path string
	Flag string
}

// Args returns the argument list that runs command through the shell
func (s Shell) Args(command string) []string {
	return []string{s.Flag, command}
}

var fallbacks = []string{"/bin/zsh", "/bin/bash", "/bin/ash", "/bin/sh"}

// Find returns the first existing shell among $SHELL, $COMSPEC and the
// usual POSIX locations. The Windows command interpreter takes /c, every
// other shell -c.
func Find() (Shell, error) {
	return find(os.Getenv, exists)
}

func find(getenv func(string) string, exists func(string) bool) (Shell, error) {
	comspec := getenv("COMSPEC")
	candidates := append([]string{getenv("SHELL"), comspec}, fallbacks...)

	for _, path := range candidates {
		if path == "" || !exists(path) {
			continue
		}
		flag := "-c"
		if path == comspec {
			flag = "/c"
		}
		return Shell{Path: path, Flag: flag}, nil
	}

	return Shell{}, errors.New(errors.ErrShellNotFound, "No shell found!")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
