/*
DESCRIPTION
  vcenc is a command-line encoder: it reads raw YCbCr 4:2:0 frames from
  standard input and writes a compressed bitstream to standard output.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the vcenc command-line encoder.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/vidcodec/codec/vc"
	"github.com/ausocean/vidcodec/internal/yuvio"
)

const (
	logPath      = "vcenc.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vcenc <width> <height> <low|medium|high>")
}

func main() {
	logFile := flag.String("log", "", "path to rotate log output to (default: stderr only)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(1)
	}

	width, err := strconv.Atoi(flag.Arg(0))
	if err != nil || width <= 0 {
		fmt.Fprintln(os.Stderr, "vcenc: invalid width")
		usage()
		os.Exit(1)
	}
	height, err := strconv.Atoi(flag.Arg(1))
	if err != nil || height <= 0 {
		fmt.Fprintln(os.Stderr, "vcenc: invalid height")
		usage()
		os.Exit(1)
	}
	quality, err := vc.ParseQuality(flag.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, "vcenc:", err)
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
	log.Info("starting vcenc", "width", width, "height", height, "quality", quality.String())

	src := yuvio.NewReader(os.Stdin, log, width, height)
	enc, err := vc.NewEncoder(os.Stdout, log, width, height, quality)
	if err != nil {
		log.Error("could not create encoder", "error", err.Error())
		os.Exit(1)
	}

	for {
		if err := src.Next(); err != nil {
			if err == io.EOF {
				break
			}
			log.Error("truncated input", "error", err.Error())
			os.Exit(1)
		}
		if err := enc.EncodeFrame(src); err != nil {
			log.Error("encode failed", "error", err.Error())
			os.Exit(1)
		}
	}

	if err := enc.Close(); err != nil {
		log.Error("close failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("vcenc finished")
}
