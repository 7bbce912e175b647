// heightmesh is a CLI utility for inspecting and converting heightmap images
// without opening a window.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/Faultbox/midgard-heightmap/internal/config"
	"github.com/Faultbox/midgard-heightmap/internal/engine/debug"
	"github.com/Faultbox/midgard-heightmap/internal/engine/lighting"
	"github.com/Faultbox/midgard-heightmap/internal/engine/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "obj":
		err = cmdOBJ(args)
	case "preview":
		err = cmdPreview(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heightmesh - heightmap terrain utility

Usage:
  heightmesh <command> [options]

Commands:
  info <image>                          Show heightfield and mesh statistics
  obj <image> [out.obj]                 Export the terrain mesh as Wavefront OBJ
  preview [-scale N] [-height H] [-azimuth A] [-elevation E] [-ambient F] <image> [out.png|out.webp]
                                        Write a hillshaded top-down preview
  config [path]                         Write the default viewer config

Examples:
  heightmesh info island.png
  heightmesh obj island.png island.obj
  heightmesh preview -scale 4 island.png island.webp`)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: heightmesh info <image>")
	}

	hf, err := terrain.LoadHeightfield(args[0])
	if err != nil {
		return err
	}
	mesh := terrain.BuildMesh(hf)

	lo, hi := uint8(255), uint8(0)
	var sum uint64
	for _, s := range hf.Samples {
		lo = min(lo, s)
		hi = max(hi, s)
		sum += uint64(s)
	}

	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Size:       %d x %d samples\n", hf.Width, hf.Height)
	fmt.Printf("Samples:    min %d, max %d, mean %.1f\n", lo, hi, float64(sum)/float64(len(hf.Samples)))
	fmt.Printf("Vertices:   %d\n", len(mesh.Vertices))
	fmt.Printf("Indices:    %d (%d triangles)\n", len(mesh.Indices), mesh.TriangleCount())
	fmt.Printf("Bounds:     %v - %v\n", mesh.Bounds.Min, mesh.Bounds.Max)
	fmt.Printf("GPU bytes:  %s\n", formatSize(len(mesh.Vertices)*20+len(mesh.Indices)*4))

	return mesh.Validate()
}

func cmdOBJ(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: heightmesh obj <image> [out.obj]")
	}

	mesh, err := terrain.Load(args[0])
	if err != nil {
		return err
	}

	out := replaceExt(args[0], ".obj")
	if len(args) > 1 {
		out = args[1]
	}

	if err := createFile(out, func(w io.Writer) error { return terrain.WriteOBJ(w, mesh) }); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d vertices, %d triangles)\n", out, len(mesh.Vertices), mesh.TriangleCount())
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	scale := fs.Int("scale", 1, "Upscale factor")
	heightScale := fs.Float64("height", 64, "Vertical exaggeration in samples per full intensity")
	sun := lighting.DefaultSun()
	azimuth := fs.Float64("azimuth", float64(sun.Azimuth), "Sun azimuth in degrees")
	elevation := fs.Float64("elevation", float64(sun.Elevation), "Sun elevation in degrees")
	ambient := fs.Float64("ambient", float64(sun.Ambient), "Ambient light floor in [0,1]")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: heightmesh preview [-scale N] [-height H] [-azimuth A] [-elevation E] [-ambient F] <image> [out.png|out.webp]")
	}
	if *scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", *scale)
	}

	mesh, err := terrain.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	sun = lighting.Sun{
		Azimuth:   float32(*azimuth),
		Elevation: float32(*elevation),
		Ambient:   float32(*ambient),
	}
	var img image.Image = terrain.Relief(mesh, float32(*heightScale), sun)
	if *scale > 1 {
		b := img.Bounds()
		dst := image.NewGray(image.Rect(0, 0, b.Dx()**scale, b.Dy()**scale))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	out := replaceExt(fs.Arg(0), "_preview.png")
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}

	format := debug.FormatFromPath(out)
	if err := createFile(out, func(w io.Writer) error { return debug.Encode(w, img, format) }); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// createFile writes path through write. A failed Close is reported like a
// failed write.
func createFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return write(f)
}

func cmdConfig(args []string) error {
	cfg := config.Default()
	if len(args) == 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return nil
	}

	if err := cfg.SaveTo(args[0]); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func formatSize(size int) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
