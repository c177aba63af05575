// SPDX-License-Identifier: Unlicense OR MIT

// Command eglprobe lists the EGL configurations of the default display
// and the configuration a view would select.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"

	"gioui.org/eglview"
	"gioui.org/eglview/backend"
	"gioui.org/eglview/chooser"
	"gioui.org/eglview/driver"
	"gioui.org/eglview/internal/egl"
)

var (
	variant     = flag.String("variant", "regular", "backend variant (regular, stereo-legacy, stereo-openxr)")
	gl3         = flag.Bool("gl3", false, "require OpenGL ES 3 configurations")
	debug       = flag.Bool("debug", false, "create a debug context")
	translucent = flag.Bool("translucent", false, "request an alpha channel")
	verbose     = flag.Bool("v", false, "log debug messages to stderr")
)

func main() {
	flag.Parse()
	if *verbose {
		eglview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "eglprobe: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	v, err := backend.ParseVariant(*variant)
	if err != nil {
		return err
	}
	opts := backend.Options{
		Variant:         v,
		HigherGLProfile: *gl3,
		DebugContext:    *debug,
		Translucent:     *translucent,
	}
	drv, err := egl.Open()
	if err != nil {
		return err
	}
	return probe(os.Stdout, drv, opts)
}

// probe prints every configuration of the default display, then the
// selection and a test context of opts.
func probe(w io.Writer, drv driver.Driver, opts backend.Options) error {
	disp, err := drv.Display(driver.DefaultDisplay)
	if err != nil {
		return err
	}
	cands, err := chooser.Enumerate(drv, disp)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFORMAT\tSAMPLES\tES2\tES3\tWINDOW\tPBUFFER")
	for _, c := range cands {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", c.ID, c.Format, c.Samples,
			yes(c.Renderable&driver.OpenGLES2Bit), yes(c.Renderable&driver.OpenGLES3Bit),
			yes(c.Surface&driver.WindowBit), yes(c.Surface&driver.PbufferBit))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	b, err := backend.New(drv, opts)
	if err != nil {
		return err
	}
	sel, err := b.ChooseConfig(disp)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s: selected config %d (%s), link %d, requested %s", opts.Variant, sel.ID, sel.Format, sel.Link, sel.Requested)
	switch {
	case sel.AlphaDropped():
		fmt.Fprintln(w, ", alpha dropped")
	case sel.Degraded():
		fmt.Fprintln(w, ", degraded")
	default:
		fmt.Fprintln(w)
	}
	ctx, err := b.CreateContext(disp, sel.Config)
	if err != nil {
		return errors.Wrap(err, "test context")
	}
	fmt.Fprintf(w, "context attributes: %v\n", b.ContextAttribs())
	return b.DestroyContext(disp, ctx)
}

func yes(bits int32) string {
	if bits != 0 {
		return "yes"
	}
	return "-"
}
