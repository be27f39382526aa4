package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mayomeir007/quadfx"
	"github.com/mayomeir007/quadfx/codec"
	"github.com/mayomeir007/quadfx/store"
	"github.com/mayomeir007/quadfx/texture"
)

type applyOptions struct {
	in, out        string
	blur           float64
	invert         bool
	withoutEffects bool
	gpu            bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOptions
	applyCmd := &cobra.Command{
		Use:   "apply --in <path> --out <path> [--blur <percent>] [--invert] [--without-effects] [--gpu]",
		Short: "Apply effects to an image and save the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runApply(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.out)
			return nil
		},
	}
	applyCmd.Flags().StringVar(&opts.in, "in", "", "Path of the PNG or JPEG image to load")
	applyCmd.Flags().StringVar(&opts.out, "out", "", "Path to save to, .jpg saves JPEG and anything else PNG")
	applyCmd.Flags().Float64Var(&opts.blur, "blur", 0, "Gaussian blur strength as a percentage of the image size")
	applyCmd.Flags().BoolVar(&opts.invert, "invert", false, "Invert the color channels")
	applyCmd.Flags().BoolVar(&opts.withoutEffects, "without-effects", false, "Save the loaded image without effects")
	applyCmd.Flags().BoolVar(&opts.gpu, "gpu", false, "Mirror the effects into a WebGPU texture")
	applyCmd.MarkFlagRequired("in")
	applyCmd.MarkFlagRequired("out")
	return applyCmd
}

func runApply(opts applyOptions) error {
	if !codec.Acceptable(opts.in) {
		return fmt.Errorf("%w: %s", quadfx.ErrUnsupportedPath, opts.in)
	}
	sync := openSync(opts.gpu)
	s := store.New(sync)
	defer s.Close()

	if err := s.Load(opts.in); err != nil {
		return err
	}
	switch {
	case opts.blur != 0:
		if err := s.Blur(opts.blur, opts.invert); err != nil {
			return err
		}
	case opts.invert:
		if err := s.Invert(); err != nil {
			return err
		}
	}
	if opts.withoutEffects {
		return s.SaveWithoutEffects(opts.out)
	}
	return s.SaveWithEffects(opts.out)
}

// openSync returns a WebGPU texture sync when requested and available,
// falling back to host memory otherwise.
func openSync(gpu bool) texture.Sync {
	if !gpu {
		return &texture.Memory{}
	}
	device, queue, err := texture.OpenDevice()
	if err == nil && device == nil {
		err = errors.New("no device")
	}
	if err != nil {
		quadfx.Logger().Warn("webgpu unavailable, using host memory texture", "err", err)
		return &texture.Memory{}
	}
	return texture.NewWGPU(device, queue, "quadfx")
}
