package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/metrics"
	"github.com/vango-dev/vdom/pkg/mount"
	"github.com/vango-dev/vdom/pkg/render"
	"github.com/vango-dev/vdom/pkg/vdom"
)

type diffOptions struct {
	stats  bool
	verify bool
}

func diffCmd(a *app) *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff <old.html> <new.html>",
		Short: "Print the patches that turn one tree into another",
		Long: `Diff two trees and print one patch per line, in application order.

Each line reads OP@INDEX followed by the patch payload, where INDEX is the
depth-first position of the target node in the old tree.

With --verify the old tree is built as a real tree, patched, and compared
with the new tree. With --stats (or metrics.enabled in the config) the
Prometheus metrics recorded along the way are printed after the patches.

Examples:
  vdom diff before.html after.html
  vdom diff --verify --stats before.html after.html
  cat after.html | vdom diff before.html -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiff(cmd.Context(), cmd.InOrStdin(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print Prometheus metrics for the run")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Apply the patches to a real tree and check the result")

	return cmd
}

func (a *app) runDiff(ctx context.Context, stdin io.Reader, oldPath, newPath string, opts diffOptions) error {
	if oldPath == "-" && newPath == "-" {
		return errors.New("E140").WithDetail("Only one of the two trees can be read from standard input")
	}
	prev, err := readTree(stdin, oldPath)
	if err != nil {
		return err
	}
	next, err := readTree(stdin, newPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.New(
		metrics.WithRegistry(reg),
		metrics.WithNamespace(a.cfg.Metrics.Namespace),
		metrics.WithSubsystem(a.cfg.Metrics.Subsystem),
	)

	start := time.Now()
	patches := vdom.Diff(prev, next)
	collector.ObserveDiff(time.Since(start), patches)
	a.logger.Debug("diff computed", "old", oldPath, "new", newPath, "patches", len(patches))

	for _, p := range patches {
		fmt.Fprintln(a.stdout, p)
	}

	if opts.verify {
		if err := a.verify(ctx, prev, next, collector); err != nil {
			return err
		}
	}

	if opts.stats || a.cfg.Metrics.Enabled {
		return writeMetrics(a.stdout, reg)
	}
	return nil
}

// verify builds prev as a real tree, updates it to next and checks that the
// result serializes like next.
func (a *app) verify(ctx context.Context, prev, next *vdom.VNode, collector *metrics.Collector) error {
	m, err := mount.New(dom.NewDocument(), prev,
		mount.WithLogger(a.logger),
		mount.WithTracer(a.tracer()),
		mount.WithMetrics(collector),
	)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Update(ctx, next); err != nil {
		return err
	}
	got, want := render.DOMString(m.Root()), render.String(next)
	if got != want {
		return errors.New("E111").
			WithOp("verify").
			WithDetail("got  " + got + "\nwant " + want)
	}
	fmt.Fprintln(a.stdout, success(a.stdout, "patched tree matches"))
	return nil
}

func (a *app) tracer() trace.Tracer {
	if a.cfg.Tracing.Enabled {
		return otel.Tracer(a.cfg.Tracing.Tracer)
	}
	return noop.NewTracerProvider().Tracer("")
}

// writeMetrics prints every gathered family in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
