// Package iocli abstracts terminal interaction so commands can be
// tested with scripted input.
package iocli

// IO is the terminal surface used by CLI commands. ReadPassword must
// not echo the input.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
