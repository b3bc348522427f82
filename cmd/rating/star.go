package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	rerrors "github.com/vango-dev/rating/internal/errors"
	"github.com/vango-dev/rating/pkg/star"
)

func starCmd() *cobra.Command {
	var (
		size   string
		format string
		scale  int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "star",
		Short: "Write a star icon as SVG or PNG",
		Long: `Write a star icon.

SVG output reads its colors from the page's --star-yellow and
--star-placeholder CSS variables. PNG output paints the star with the
filled color from the config file.

Examples:
  rating star --size=l > star.svg
  rating star --format=png --scale=2 --out=star@2x.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(dir)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				size = cfg.Star.Size
			}
			colors := star.Colors{Filled: cfg.Star.Filled, Placeholder: cfg.Star.Placeholder}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeStar(w, cmd.ErrOrStderr(), size, format, scale, colors)
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "", "Size category: s, m or l (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "Output format: svg or png")
	cmd.Flags().IntVar(&scale, "scale", 1, "Pixel ratio for PNG output")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")

	return cmd
}

// writeStar writes the icon to w. An unknown size is reported on errw and
// rendered at the default size.
func writeStar(w, errw io.Writer, size, format string, scale int, colors star.Colors) error {
	parsed, err := star.ParseSize(size)
	if err != nil {
		rerrors.Fprint(errw, err)
	}

	switch format {
	case "svg":
		svg, err := star.Markup(parsed)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, svg+"\n")
		return err
	case "png":
		return star.WritePNG(w, parsed, colors, scale)
	default:
		return fmt.Errorf("unknown format %q (want svg or png)", format)
	}
}
