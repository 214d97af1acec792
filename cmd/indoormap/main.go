package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"indoor-map/internal/indoor/lint"
	"indoor-map/internal/indoor/mapper"
	"indoor-map/internal/indoor/parser"
)

// ============================================================
// Indoor Map CLI
// ============================================================

func main() {
	in := flag.String("in", "", "map document to read (default stdin)")
	format := flag.String("format", "json", "output format: json, svg, png, geojson, scene")
	floors := flag.String("floor", "", "comma separated floor names to keep (default all)")
	out := flag.String("out", "", "output file (default stdout)")
	ppm := flag.Float64("ppm", mapper.DefaultPixelsPerMeter, "raster resolution in pixels per meter")
	doLint := flag.Bool("lint", false, "print lint issues to stderr")
	flag.Parse()

	log.SetFlags(0)
	if err := run(*in, *format, *floors, *out, *ppm, *doLint); err != nil {
		log.Fatalf("indoormap: %v", err)
	}
}

func run(in, formatName, floors, out string, ppm float64, doLint bool) error {
	f, err := mapper.ParseFormat(formatName)
	if err != nil {
		return err
	}

	var src io.Reader = os.Stdin
	if in != "" {
		file, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("%w: %v", parser.ErrSourceUnavailable, err)
		}
		defer file.Close()
		src = file
	}

	opts := mapper.Options{PixelsPerMeter: ppm}
	if floors != "" {
		opts.Floors = strings.Split(floors, ",")
	}
	linter := lint.New()
	if doLint {
		opts.Listeners = append(opts.Listeners, linter)
	}

	data, err := mapper.Render(src, f, opts)
	if err != nil {
		return err
	}

	for _, issue := range linter.Issues {
		fmt.Fprintln(os.Stderr, issue)
	}

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
