package cli

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/draughtworks/sheetgate/pkg/metrics"
)

// compareCommand creates the compare command for ad-hoc pairwise metrics.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		profileName  string
		profilesFile string
	)

	cmd := &cobra.Command{
		Use:   "compare [image-a] [image-b]",
		Short: "Compute pairwise similarity metrics for two images",
		Long: `Compute pairwise similarity metrics for two images.

The compare command decodes two image files and prints their SSIM score,
perceptual-hash distance, and edge-overlap ratio. With a profile it also
reports whether the pair would pass that profile's cross-view thresholds.

This is the same metric bundle the run command computes for designated
cross-view pairs; compare exposes it for threshold tuning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(args[0], args[1], profileName, profilesFile)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "judge the pair against this profile's thresholds")
	cmd.Flags().StringVar(&profilesFile, "profiles-file", "", "TOML file with custom profiles")

	return cmd
}

// runCompare decodes both files, computes the metric bundle, and prints it.
func (c *CLI) runCompare(pathA, pathB, profileName, profilesFile string) error {
	imgA, err := decodeImageFile(pathA)
	if err != nil {
		return err
	}
	imgB, err := decodeImageFile(pathB)
	if err != nil {
		return err
	}

	m, err := metrics.Compare(imgA, imgB)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	printInfo("%s %s %s", StyleValue.Render(pathA), StyleDim.Render(iconArrow), StyleValue.Render(pathB))
	printDetail("ssim              %.4f", m.SSIM)
	printDetail("phash distance    %d", m.PHashDistance)
	printDetail("phash similarity  %.4f", m.PHashSimilarity)
	printDetail("edge overlap      %.4f", m.EdgeOverlap)

	if profileName == "" {
		return nil
	}

	profile, err := resolveProfile(profileName, profilesFile)
	if err != nil {
		return fmt.Errorf("resolve profile: %w", err)
	}
	printNewline()
	if m.SSIM >= profile.MinSSIM &&
		m.PHashSimilarity >= profile.MinPHashSimilarity &&
		m.EdgeOverlap >= profile.MinEdgeOverlap {
		printSuccess("Passes %s thresholds", profile.Name)
		return nil
	}
	printError("Below %s thresholds (ssim>=%.2f phash>=%.2f edges>=%.2f)",
		profile.Name, profile.MinSSIM, profile.MinPHashSimilarity, profile.MinEdgeOverlap)
	return fmt.Errorf("pair below %s thresholds", profile.Name)
}

// decodeImageFile reads and decodes one raster file.
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
