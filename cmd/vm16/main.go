// Command vm16 is the assemble/run/debug driver for the 16-bit VM: it
// wires the asm package's parser and codegen to the vm package's CPU the
// same way the teacher project's single main.go does, split across
// per-subcommand files instead of one file.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:    "vm16",
		Usage:   "assemble and run programs for the 16-bit register VM",
		Version: "v0.1.0",
		Commands: []*cli.Command{
			assembleCommand(),
			runCommand(),
			debugCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
