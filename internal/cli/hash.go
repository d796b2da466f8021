package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// hashCommand creates the hash command for computing perceptual hashes.
func (c *CLI) hashCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "hash [image...]",
		Short: "Compute perceptual hashes of images",
		Long: `Compute perceptual hashes of images.

The hash command prints the 64-bit perceptual hash of each image file, one
per line. Two images with a small Hamming distance between their hashes are
perceptually similar regardless of resolution or encoding.

Hashes are cached by content, so re-hashing unchanged files is free.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHash(cmd.Context(), args, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runHash hashes each file and prints hash plus path. Unreadable or
// undecodable files fail the command after the remaining files are reported.
func (c *CLI) runHash(ctx context.Context, paths []string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			printError("%s: %v", path, err)
			failed++
			continue
		}
		h, err := runner.HashImage(ctx, data)
		if err != nil {
			printError("%s: %v", path, err)
			failed++
			continue
		}
		fmt.Printf("%s  %s\n", StyleHighlight.Render(h.String()), path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be hashed", failed, len(paths))
	}
	return nil
}
