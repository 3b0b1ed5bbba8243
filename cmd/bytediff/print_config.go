package main

import (
	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(o *IO, _ []string) error {
			formatted, err := FormatConfig(cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)

			return nil
		},
	}
}
