package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mayomeir007/quadfx/codec"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>...",
		Short: "Print the pixel layout each image decodes to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				b, f, err := codec.Open(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				d := b.Dims()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %s stride=%d format=%s\n",
					path, d.Width, d.Height, d.Shape, d.Stride, f)
				b.Release()
			}
			return nil
		},
	}
}
