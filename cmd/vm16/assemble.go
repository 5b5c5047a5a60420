package main

import (
	"bufio"
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v2"

	"vm16/asm"
)

func assembleCommand() *cli.Command {
	return &cli.Command{
		Name:      "assemble",
		Usage:     "assemble a source listing into a raw byte image",
		ArgsUsage: "<in.asm>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output image path",
				Value:   "a.img",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("assemble: expected exactly one source file")
			}
			return runAssemble(c.Args().Get(0), c.String("out"))
		},
	}
}

func runAssemble(inPath, outPath string) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %q: %w", inPath, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %q: %w", inPath, err)
	}

	img, err := asm.AssembleSource(lines, 0, nil)
	if err != nil {
		return fmt.Errorf("assembling %q: %w", inPath, err)
	}

	if err := os.WriteFile(outPath, img, 0644); err != nil {
		return fmt.Errorf("writing %q: %w", outPath, err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(img), outPath)
	return nil
}
