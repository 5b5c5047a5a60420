package main

import (
	"context"
	"fmt"

	cli "gopkg.in/urfave/cli.v2"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run an assembled image to completion",
		ArgsUsage: "<image>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("run: expected exactly one image file")
			}
			return runImage(c.Args().Get(0))
		},
	}
}

func runImage(path string) error {
	img, err := readImage(path)
	if err != nil {
		return err
	}

	cpu, err := buildMachine(img)
	if err != nil {
		return err
	}

	if err := cpu.Run(context.Background()); err != nil {
		printRegisters(cpu)
		return fmt.Errorf("run: %w", err)
	}

	printRegisters(cpu)
	return nil
}
