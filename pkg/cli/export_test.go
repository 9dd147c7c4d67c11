package cli

import (
	"io"

	"github.com/urfave/cli/v3"
)

// NewApp exposes the root command with a custom output writer
func NewApp(w io.Writer) *cli.Command {
	return newApp(w)
}
