// Package pipeline runs the load -> greyscale -> invert -> write sequence.
package pipeline

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/ironsheep/image-transform/internal/imaging"
	"github.com/ironsheep/image-transform/internal/transform"
)

// Default locations used when no paths are given.
const (
	DefaultInput  = "images/lake.jpg"
	DefaultOutput = "image_solutions/lake_greyscale.jpg"
)

// Options controls a pipeline run.
type Options struct {
	Input         string            // image to read
	Output        string            // greyscale image to write
	InverseOutput string            // optional: inverse of the greyscale image
	Weights       transform.Weights // greyscale coefficients
	Domain        transform.Domain  // sample domain used for the buffers
	JPEGQuality   int               // quality for .jpg outputs (1-100)
	Stretch       bool              // render through a gray colormap spanning the data range
	Debug         bool              // log sample ranges and written paths
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Input:       DefaultInput,
		Output:      DefaultOutput,
		Weights:     transform.LiteralWeights,
		Domain:      transform.Domain8Bit,
		JPEGQuality: 95,
		Stretch:     true,
	}
}

// Result describes what a run produced.
type Result struct {
	Width   int
	Height  int
	Written []string // output paths in write order
	GreyMin float64  // smallest greyscale sample before rendering
	GreyMax float64  // largest greyscale sample before rendering
}

// Run loads opts.Input, converts it to greyscale, optionally inverts it, and
// writes the results.
//
// All outputs are rendered before anything is written. If a write fails, files
// already written by this run are removed, so an error never leaves partial
// output behind.
func Run(cache *imaging.ImageCache, opts Options) (*Result, error) {
	if opts.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}

	img, err := cache.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	buf, err := imaging.FromImage(img, opts.Domain)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	grey, err := transform.ToGreyscaleWith(buf, opts.Weights)
	if err != nil {
		return nil, fmt.Errorf("greyscale: %w", err)
	}

	lo, hi := grey.Bounds()
	if opts.Debug {
		log.Printf("greyscale %dx%d, samples in [%.3f, %.3f]", grey.Width, grey.Height, lo, hi)
	}

	render := imaging.RenderOptions{JPEGQuality: opts.JPEGQuality}
	if opts.Stretch {
		render.Colormap = imaging.ColormapGray
	}

	type output struct {
		path string
		img  image.Image
	}

	greyImg, err := imaging.ToImage(grey, render)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	outputs := []output{{opts.Output, greyImg}}

	if opts.InverseOutput != "" {
		inv, err := transform.Invert(grey)
		if err != nil {
			return nil, fmt.Errorf("invert: %w", err)
		}
		invImg, err := imaging.ToImage(inv, render)
		if err != nil {
			return nil, fmt.Errorf("render inverse: %w", err)
		}
		outputs = append(outputs, output{opts.InverseOutput, invImg})
	}

	result := &Result{
		Width:   grey.Width,
		Height:  grey.Height,
		GreyMin: lo,
		GreyMax: hi,
	}

	for _, o := range outputs {
		if err := imaging.WriteImage(o.path, o.img, render); err != nil {
			for _, written := range result.Written {
				os.Remove(written)
			}
			return nil, fmt.Errorf("write: %w", err)
		}
		if opts.Debug {
			log.Printf("wrote %s", o.path)
		}
		result.Written = append(result.Written, o.path)
	}

	return result, nil
}
