package main

import (
	"os"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/actor-rtc/proto-regulate/internal/protoparser"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a single proto file and dump its descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "reading %s", path)
			}

			file, err := protoparser.New().Parse(string(source))
			if err != nil {
				return errors.Wrapf(err, "parsing %s", path)
			}

			dump := proto.MarshalTextString(file)
			_, err = os.Stdout.WriteString(dump)
			return err
		},
	}
}
