// Package main implements geosync-inspect, a diagnostic tool that prints
// the vertices of a layer's first feature in its native spatial reference
// and reprojected to WGS84.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/geosync/geosync/internal/geometry"
	"github.com/geosync/geosync/internal/mapservice"
	"github.com/geosync/geosync/pkg/types"
)

func main() {
	var (
		layerURL string
		timeout  time.Duration
		withXY   bool
	)

	flag.StringVar(&layerURL, "url", "", "Map-service layer URL")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")
	flag.BoolVar(&withXY, "coords", false, "Print individual vertex coordinates")
	flag.Parse()

	if layerURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: geosync-inspect --url <layer-url> [--coords]")
		os.Exit(2)
	}

	ctx := context.Background()
	layer := mapservice.NewClient(timeout).Layer(layerURL)

	desc, err := layer.Describe(ctx)
	if err != nil {
		log.Fatalf("geosync-inspect: %v", err)
	}

	fs, err := layer.Query(ctx, "")
	if err != nil {
		log.Fatalf("geosync-inspect: %v", err)
	}
	if len(fs.Features) == 0 {
		log.Fatalf("geosync-inspect: no features found in %s", layerURL)
	}

	first := fs.Features[0]
	native := geometry.VerticesByPart(first.Geometry, true)

	projected, err := geometry.ToWGS84(first.Geometry, fs.WKID)
	if err != nil {
		log.Fatalf("geosync-inspect: %v", err)
	}
	wgs := geometry.VerticesByPart(projected, true)

	fmt.Printf("Layer geometry type : %s\n", desc.GeometryType)
	fmt.Printf("Source WKID         : %d\n", fs.WKID)
	fmt.Printf("Parts (native)/pts  : %d / %d\n", len(native), totalPoints(native))
	fmt.Printf("Parts (WGS84)/pts   : %d / %d\n", len(wgs), totalPoints(wgs))

	if withXY {
		printParts("native", native)
		printParts("WGS84", wgs)
	}
}

func totalPoints(parts [][]types.Point) int {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	return n
}

func printParts(label string, parts [][]types.Point) {
	for i, part := range parts {
		fmt.Printf("\n%s part %d (%d pts):\n", label, i+1, len(part))
		for _, pt := range part {
			fmt.Printf("  (%.6f, %.6f)\n", pt.X, pt.Y)
		}
	}
}
