package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform/internal/imaging"
	"github.com/ironsheep/image-transform/internal/transform"
)

var invertCmd = &cobra.Command{
	Use:   "invert INPUT OUTPUT",
	Short: "Write the negative of a color or greyscale image",
	Args:  cobra.ExactArgs(2),
	RunE:  runInvert,
}

func init() {
	invertCmd.Flags().String("domain", "8bit", "Sample domain (8bit, unit)")
	invertCmd.Flags().Int("quality", 95, "JPEG quality (1-100)")
	rootCmd.AddCommand(invertCmd)
}

func runInvert(cmd *cobra.Command, args []string) error {
	domainName, _ := cmd.Flags().GetString("domain")
	quality, _ := cmd.Flags().GetInt("quality")

	domain, err := transform.ParseDomain(domainName)
	if err != nil {
		return err
	}

	img, err := imaging.NewImageCache().Load(args[0])
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	buf, err := imaging.FromImage(img, domain)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	inv, err := transform.Invert(buf)
	if err != nil {
		return fmt.Errorf("invert: %w", err)
	}
	if err := imaging.Save(args[1], inv, imaging.RenderOptions{JPEGQuality: quality}); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Inverted %dx%dx%d image -> %s\n", inv.Height, inv.Width, inv.Channels, args[1])
	return nil
}
