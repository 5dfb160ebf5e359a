// Command vitrine is a terminal image picker. A host launches it with a
// capacity and an optional initial selection; the chosen image paths are
// written to stdout.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/vitrine/internal/stderr"
)

var version = "dev"

// errCanceled ends a picker session the user abandoned. It exits with
// status 1 and prints nothing.
var errCanceled = errors.New("canceled")

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errCanceled) {
			stderr.WriteOriginal(fmt.Sprintf("vitrine: %v\n", err))
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vitrine",
		Short:         "Pick images from your library in the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPickCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newConfigCmd())
	return root
}
