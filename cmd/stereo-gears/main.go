// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command stereo-gears draws rotating gears in stereo on a 3D display,
// straight to the output without a window system.
//
// Usage:
//
//	stereo-gears [-d device] [-c connector] [-l layout] [-hud] [-v]
//
// The layout is one of none, fp, fa, la, sbsf, ld, ldggd, tb or sbsh.
// Without -l the best 3D mode of the output is used. Interrupt to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/gogpu/stereo"
	"github.com/gogpu/stereo/egl"
	"github.com/gogpu/stereo/gears"
	"github.com/gogpu/stereo/gles"
)

func init() {
	// The rendering context is bound to the thread that made it current.
	runtime.LockOSThread()
}

type config struct {
	device    string
	connector uint32
	layout    string
	hud       bool
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("stereo-gears", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.device, "d", stereo.DefaultDevicePath, "DRM device node")
	fs.Func("c", "connector id (default first usable)", func(v string) error {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		cfg.connector = uint32(id)
		return nil
	})
	fs.StringVar(&cfg.layout, "l", "", "3D layout: "+formatNames()+" (default best available)")
	fs.BoolVar(&cfg.hud, "hud", false, "label each eye with its name and layout")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: stereo-gears [flags]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return cfg, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return cfg, nil
}

func formatNames() string {
	var names []string
	for _, f := range stereo.Formats() {
		names = append(names, f.ShortName())
	}
	return strings.Join(names, "|")
}

func (c config) options() (stereo.Options, error) {
	opts := stereo.Options{
		DevicePath:  c.device,
		ConnectorID: c.connector,
	}
	if c.layout != "" {
		f, err := stereo.ParseFormat(c.layout)
		if err != nil {
			return opts, err
		}
		opts.Format = &f
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool, tty bool) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		hopts.Level = slog.LevelDebug
	}
	if tty {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := parseFlags(args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	log := newLogger(os.Stderr, cfg.verbose, term.IsTerminal(int(os.Stderr.Fd())))
	stereo.SetLogger(log)

	opts, err := cfg.options()
	if err != nil {
		log.Error("invalid layout", "err", err)
		return 2
	}

	if err := render(opts, cfg.hud); err != nil {
		log.Error("stereo-gears failed", "err", err)
		return 1
	}
	return 0
}

func render(opts stereo.Options, hud bool) error {
	lib, err := egl.Load()
	if err != nil {
		return err
	}
	defer lib.Close()

	gl, err := gles.Load()
	if err != nil {
		return err
	}
	defer gl.Close()

	opts.Platform = lib
	p, err := stereo.Open(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := p.Run(ctx, gears.NewRenderer(gl, p.Context(), gears.Options{HUD: hud}))
	return errors.Join(runErr, p.Close())
}
