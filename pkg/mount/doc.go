// Package mount attaches a virtual tree to a real tree and keeps the two in
// sync.
//
// A Mount is created in one of three ways:
//
//	m, err := mount.New(doc, view())                  // detached root
//	m, err := mount.NewAppendToMount(view(), body)    // appended to body
//	m, err := mount.NewReplaceMount(view(), placeholder)
//
// Each call to Update diffs the new virtual tree against the last one and
// applies the patches. Event handlers from the newest tree are always the
// ones that run. When the tree rejects a patch, Update returns the error
// and rebuilds the real tree from the last virtual tree it matched.
//
// Scheduler batches render requests that arrive in quick succession:
//
//	s := mount.NewScheduler(m, view, mount.DefaultFrame)
//	go s.Run(ctx)
//	s.Schedule()
//
// Updates are traced with OpenTelemetry (spans vdom.update, vdom.diff and
// vdom.patch) and, with WithMetrics, counted in Prometheus.
package mount
