// Package main is a command-line front end for one-shot density conversions.
//
// Usage:
//
//	density --material water --volume 2
//	density --material 2500 --length 2 --width 1 --height 0.5 --format json
//	density --list --search oil
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/vbpupil/measurement-converter/internal/application/dto"
	"github.com/vbpupil/measurement-converter/internal/application/service"
	"github.com/vbpupil/measurement-converter/internal/domain/repository"
	"github.com/vbpupil/measurement-converter/internal/domain/valueobject"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/config"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/logging"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/persistance/memory"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "density:", err)
		os.Exit(1)
	}
}

var (
	errIncompleteDimensions = errors.New("--length, --width and --height must be given together")
	errVolumeAndDimensions  = errors.New("--volume cannot be combined with --length, --width and --height")
)

type options struct {
	material string
	volume   float64
	length   float64
	width    float64
	height   float64
	format   string
	list     bool
	search   string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	fs := pflag.NewFlagSet("density", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.material, "material", "m", "", "material name or density in kg/m³")
	fs.Float64VarP(&opts.volume, "volume", "v", 0, "volume in cubic meters")
	fs.Float64Var(&opts.length, "length", 0, "box length in meters (instead of --volume)")
	fs.Float64Var(&opts.width, "width", 0, "box width in meters")
	fs.Float64Var(&opts.height, "height", 0, "box height in meters")
	fs.StringVarP(&opts.format, "format", "f", "text", "output format: text or json")
	fs.BoolVar(&opts.list, "list", false, "list known materials")
	fs.StringVar(&opts.search, "search", "", "filter --list by name")
	fs.Bool("strict", false, "reject an empty material")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	v := config.New()
	if err := v.BindPFlag("converter.strict_material", fs.Lookup("strict")); err != nil {
		return fmt.Errorf("failed to bind --strict: %w", err)
	}
	if err := v.BindPFlag("log.level", fs.Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind --log-level: %w", err)
	}
	cfg, err := config.LoadWith(v)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Output: stderr})
	if err != nil {
		return err
	}
	defer log.Sync()
	adapter := logging.NewAdapter(log)

	repo := memory.NewMaterialRepository(nil)

	if opts.list {
		page, err := service.NewMaterialService(repo, adapter).List(ctx, repository.MaterialFilter{SearchTerm: opts.search})
		if err != nil {
			return err
		}
		return writeMaterials(stdout, opts.format, page.Items)
	}

	volume := opts.volume
	if fs.Changed("length") || fs.Changed("width") || fs.Changed("height") {
		if !fs.Changed("length") || !fs.Changed("width") || !fs.Changed("height") {
			return errIncompleteDimensions
		}
		if fs.Changed("volume") {
			return errVolumeAndDimensions
		}
		volume = valueobject.NewDimensions(opts.length, opts.width, opts.height).CubicMeters()
	}

	conversions := service.NewConversionService(repo, adapter, nil, cfg.Converter.StrictMaterial)
	resp, err := conversions.Convert(ctx, dto.ConversionRequest{
		Material: dto.MaterialName(opts.material),
		VolumeM3: volume,
	})
	if err != nil {
		return err
	}
	return writeConversion(stdout, opts.format, resp)
}

func writeConversion(w io.Writer, format string, resp *dto.ConversionResponse) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "material\t%s\n", resp.Material)
		fmt.Fprintf(tw, "density\t%s\n", valueobject.Density(resp.DensityKgM3))
		fmt.Fprintf(tw, "volume\t%s\n", valueobject.CubicMeters(resp.VolumeM3))
		for _, unit := range []valueobject.WeightUnit{valueobject.UnitTonne, valueobject.UnitUSTon, valueobject.UnitImperialTon} {
			s, err := resp.Weight.Format(unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\n", unit, s)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeMaterials(w io.Writer, format string, items []dto.MaterialResponse) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "text":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, m := range items {
			fmt.Fprintf(tw, "%s\t%g\n", m.Name, m.DensityKgM3)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}
