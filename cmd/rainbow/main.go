// Copyright © 2015-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command rainbow renders a triangle-mesh scene with progressive
// photon mapping and optionally dumps a PNG preview of the result.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"runtime"
	"unsafe"

	"golang.org/x/image/draw"
	syscpu "golang.org/x/sys/cpu"

	"github.com/gazed/rainbow/assets"
	"github.com/gazed/rainbow/camera"
	cpu "github.com/gazed/rainbow/render/cpu"
	"github.com/gazed/rainbow/scene"
	"github.com/gazed/rainbow/viewport"
)

func main() {
	verbose := flag.Bool("verbose", false, "print a startup CPU banner and per-stage render timing")
	preview := flag.Bool("preview", false, "write a downsampled PNG preview of the render")
	out := flag.String("out", "render.png", "output PNG path when -preview is set")
	flag.Parse()

	// a missing positional scene path falls back to an empty scene,
	// mirroring the source's argv[1]-only main().
	scenePath := ""
	if flag.NArg() > 0 {
		scenePath = flag.Arg(0)
	}

	if *verbose {
		printCPUBanner()
	}

	rcfg, err := assets.LoadRenderConfig(scenePath)
	if err != nil {
		log.Fatalf("rainbow: %v", err)
	}

	width, height := 640, 480
	if rcfg.Width > 0 {
		width = rcfg.Width
	}
	if rcfg.Height > 0 {
		height = rcfg.Height
	}

	var s *scene.Scene
	if scenePath == "" {
		s = scene.Empty()
	} else {
		s = scene.New()
		if err := s.Load(scenePath); err != nil {
			log.Fatalf("rainbow: loading %s: %v", scenePath, err)
		}
	}
	if *verbose {
		fmt.Printf("rainbow: octree\n%s", s.Octree())
	}

	var opts []cpu.Option
	if rcfg.PhotonCount > 0 {
		opts = append(opts, cpu.PhotonCount(rcfg.PhotonCount))
	}
	if rcfg.MaxBounces > 0 {
		opts = append(opts, cpu.MaxBounces(rcfg.MaxBounces))
	}
	if rcfg.K > 0 {
		opts = append(opts, cpu.K(rcfg.K))
	}
	if *verbose {
		opts = append(opts, cpu.Verbose())
	}

	backend := cpu.New(opts...)
	defer backend.Close()

	if err := backend.Prepare(s, width, height); err != nil {
		log.Fatalf("rainbow: %v", err)
	}

	vp := viewport.New(width, height)
	cam := camera.New()
	if err := backend.Render(cam, vp); err != nil {
		log.Fatalf("rainbow: %v", err)
	}

	if *preview {
		outPath := *out
		if rcfg.Output != "" {
			outPath = rcfg.Output
		}
		if err := writePreview(vp, outPath); err != nil {
			log.Fatalf("rainbow: writing preview: %v", err)
		}
	}
}

func writePreview(vp *viewport.Viewport, path string) error {
	const maxDim = 512
	src := vp.AsImage()
	b := src.Bounds()

	dw, dh := b.Dx(), b.Dy()
	if dw > maxDim || dh > maxDim {
		scale := float64(maxDim) / float64(dw)
		if s := float64(maxDim) / float64(dh); s < scale {
			scale = s
		}
		dw = int(float64(dw) * scale)
		dh = int(float64(dh) * scale)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}

func printCPUBanner() {
	lineSize := unsafe.Sizeof(syscpu.CacheLinePad{})
	fmt.Printf("rainbow: %d logical CPUs, %d-byte cache line, cpu features initialized=%v\n",
		runtime.NumCPU(), lineSize, syscpu.Initialized)
}
