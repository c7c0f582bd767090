/*
DESCRIPTION
  vcbench encodes a raw YCbCr 4:2:0 file at each quality level, reports the
  compressed size and round-trip PSNR for each, and plots the size/quality
  trade-off to quality-sweep.png.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the vcbench quality-sweep benchmark tool.
package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidcodec/codec/vc"
	"github.com/ausocean/vidcodec/internal/yuvio"
)

const outputPlot = "quality-sweep.png"

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vcbench <width> <height> <yuv-file>")
}

func main() {
	if len(os.Args) != 4 {
		usage()
		os.Exit(1)
	}
	width, err1 := strconv.Atoi(os.Args[1])
	height, err2 := strconv.Atoi(os.Args[2])
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 {
		usage()
		os.Exit(1)
	}

	raw, err := os.ReadFile(os.Args[3])
	if err != nil {
		fmt.Fprintln(os.Stderr, "vcbench: could not read input file:", err)
		os.Exit(1)
	}

	log := logging.New(logging.Warning, os.Stderr, true)

	qualities := []vc.Quality{vc.Low, vc.Medium, vc.High}
	sizes := make([]float64, len(qualities))
	psnrs := make([]float64, len(qualities))

	for i, q := range qualities {
		size, psnr, err := runOnce(log, width, height, q, raw)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vcbench: run failed:", err)
			os.Exit(1)
		}
		sizes[i], psnrs[i] = float64(size), psnr
		fmt.Printf("%-7s size=%d bytes psnr=%.2f dB\n", q, size, psnr)
	}

	if err := plotSweep(qualities, sizes, psnrs); err != nil {
		fmt.Fprintln(os.Stderr, "vcbench: could not write plot:", err)
		os.Exit(1)
	}
}

// runOnce encodes raw at quality q, decodes the result, and returns the
// compressed size in bytes and the luma PSNR between the original and
// round-tripped frames.
func runOnce(log logging.Logger, width, height int, q vc.Quality, raw []byte) (int, float64, error) {
	src := yuvio.NewReader(bytes.NewReader(raw), log, width, height)

	var compressed bytes.Buffer
	enc, err := vc.NewEncoder(&compressed, log, width, height, q)
	if err != nil {
		return 0, 0, err
	}

	var originals []*frameCopy
	for {
		if err := src.Next(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, 0, err
		}
		originals = append(originals, copyFrame(src))
		if err := enc.EncodeFrame(src); err != nil {
			return 0, 0, err
		}
	}
	if err := enc.Close(); err != nil {
		return 0, 0, err
	}

	dec, err := vc.NewDecoder(bytes.NewReader(compressed.Bytes()), log)
	if err != nil {
		return 0, 0, err
	}

	var sqErrs []float64
	for _, orig := range originals {
		dst := newFrameCopy(width, height)
		if err := dec.ReadFrame(dst); err != nil {
			return 0, 0, err
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				d := float64(orig.Y(x, y)) - float64(dst.Y(x, y))
				sqErrs = append(sqErrs, d*d)
			}
		}
	}

	mse := stat.Mean(sqErrs, nil)
	psnr := 100.0
	if mse > 0 {
		psnr = 10 * math.Log10(255*255/mse)
	}
	return compressed.Len(), psnr, nil
}

// frameCopy is a minimal in-memory vc.FrameSource/FrameSink used to retain
// the original frame for PSNR comparison.
type frameCopy struct {
	width, height int
	y, cb, cr     []byte
}

func newFrameCopy(width, height int) *frameCopy {
	cw, ch := width/2, height/2
	return &frameCopy{
		width: width, height: height,
		y: make([]byte, width*height), cb: make([]byte, cw*ch), cr: make([]byte, cw*ch),
	}
}

func copyFrame(src vc.FrameSource) *frameCopy {
	f := newFrameCopy(src.Width(), src.Height())
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			f.SetY(x, y, src.Y(x, y))
		}
	}
	return f
}

func (f *frameCopy) Width() int  { return f.width }
func (f *frameCopy) Height() int { return f.height }
func (f *frameCopy) Y(x, y int) byte  { return f.y[y*f.width+x] }
func (f *frameCopy) Cb(x, y int) byte { return f.cb[y*(f.width/2)+x] }
func (f *frameCopy) Cr(x, y int) byte { return f.cr[y*(f.width/2)+x] }
func (f *frameCopy) SetY(x, y int, v byte)  { f.y[y*f.width+x] = v }
func (f *frameCopy) SetCb(x, y int, v byte) { f.cb[y*(f.width/2)+x] = v }
func (f *frameCopy) SetCr(x, y int, v byte) { f.cr[y*(f.width/2)+x] = v }

// plotSweep renders compressed size against PSNR across the quality sweep
// using gonum/plot, saving the result as a PNG.
func plotSweep(qualities []vc.Quality, sizes, psnrs []float64) error {
	p := plot.New()
	p.Title.Text = "vcbench quality sweep"
	p.X.Label.Text = "compressed size (bytes)"
	p.Y.Label.Text = "PSNR (dB)"

	pts := make(plotter.XYs, len(qualities))
	for i := range qualities {
		pts[i].X = sizes[i]
		pts[i].Y = psnrs[i]
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)
	p.Legend.Add("size vs PSNR", line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, outputPlot)
}
