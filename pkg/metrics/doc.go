// Package metrics exposes Prometheus metrics for diffing, patching and
// event dispatch.
//
// A Collector is created once per registry and shared by every mount that
// should report into it:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace("app"))
//	root, _ := mount.New(doc, view(), mount.WithMetrics(m))
//
// All Collector methods accept a nil receiver.
package metrics
