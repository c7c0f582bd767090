/*
DESCRIPTION
  vcdec is a command-line decoder: it reads a compressed bitstream from
  standard input and writes raw YCbCr 4:2:0 frames to standard output.
  Dimensions and quality come from the stream header.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the vcdec command-line decoder.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidcodec/codec/vc"
	"github.com/ausocean/vidcodec/internal/yuvio"
)

const (
	logMaxSize   = 50 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vcdec")
}

func main() {
	logFile := flag.String("log", "", "path to rotate log output to (default: stderr only)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 0 {
		usage()
		os.Exit(1)
	}

	var out io.Writer = os.Stderr
	if *logFile != "" {
		out = &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		}
	}
	log := logging.New(logVerbosity, out, logSuppress)

	dec, err := vc.NewDecoder(os.Stdin, log)
	if err != nil {
		log.Error("could not read header", "error", err.Error())
		os.Exit(1)
	}
	log.Info("starting vcdec", "width", dec.Width(), "height", dec.Height(), "quality", dec.Quality().String())

	dst := yuvio.NewWriter(os.Stdout, log, dec.Width(), dec.Height())
	for {
		if err := dec.ReadFrame(dst); err != nil {
			if err == io.EOF {
				break
			}
			log.Error("decode failed", "error", err.Error())
			os.Exit(1)
		}
		if err := dst.Flush(); err != nil {
			log.Error("output write failed", "error", err.Error())
			os.Exit(1)
		}
	}
	log.Info("vcdec finished")
}
