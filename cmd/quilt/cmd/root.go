// Package cmd implements the quilt CLI's cobra command tree: parse an
// image into a program matrix, run it through the interpreter, and
// report the outcome.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quiltlang/quiltvm/imgsrc"
	"github.com/quiltlang/quiltvm/runlog"
	"github.com/quiltlang/quiltvm/vm"
)

// NewRoot builds the quilt root command.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "quilt <image>",
		Short:         "run a Quilt program image",
		Long:          "quilt decodes an image as a Quilt program and runs it, writing the program's output to standard out.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pixelSize, _ := cmd.Flags().GetInt("pixel-size")
			edit, _ := cmd.Flags().GetBool("edit")
			logFile, _ := cmd.Flags().GetString("log-file")

			if edit {
				fmt.Fprintln(os.Stderr, "quilt: the interactive editor is not part of this build")
				return errEditUnsupported
			}

			return runImage(args[0], pixelSize, logFile)
		},
	}

	pf := root.PersistentFlags()
	pf.IntP("pixel-size", "p", 1, "side length, in source pixels, of one program cell")
	pf.BoolP("edit", "e", false, "open the image in the interactive editor instead of running it")
	pf.String("log-file", "", "path to a rotating log file for run diagnostics (default: stderr only)")

	return root
}

var errEditUnsupported = errors.New("quilt: --edit is unsupported")

func runImage(path string, pixelSize int, logFile string) error {
	logger := runlog.New(runlog.Config{LogFile: logFile})
	defer logger.Close()

	matrix, err := imgsrc.Parse(path, pixelSize)
	if err != nil {
		logger.Printf("load error: %v", err)
		return err
	}

	machine := vm.New(os.Stdout)
	if err := machine.Run(matrix); err != nil {
		logger.Printf("%s", vm.FaultMessage(err))
		return nil
	}
	return nil
}
