// Package metrics counts editor activity in a Prometheus registry. Batch runs
// write the registry as a node-exporter textfile on exit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Recorder holds the editor's collectors in a private registry.
type Recorder struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	faults     *prometheus.CounterVec
	nodes      *prometheus.CounterVec
	clusters   *prometheus.CounterVec
	synonyms   *prometheus.CounterVec
}

// New creates a Recorder with every collector registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_operations_total",
			Help: "Editing operations by name and outcome.",
		}, []string{"op", "outcome"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_faults_total",
			Help: "Verification faults that rejected an operation.",
		}, []string{"op"}),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_nodes_changed_total",
			Help: "Dialog nodes added, removed or modified by applied operations.",
		}, []string{"change"}),
		clusters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_clusters_total",
			Help: "Sibling runs collapsed under a new parent, by intent.",
		}, []string{"intent"}),
		synonyms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_synonyms_dropped_total",
			Help: "Entity synonyms dropped by the length rule.",
		}, []string{"entity"}),
	}
	r.registry.MustRegister(r.operations, r.faults, r.nodes, r.clusters, r.synonyms)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Hooks returns editor hooks feeding the collectors.
func (r *Recorder) Hooks() domain.EditorHooks {
	return domain.EditorHooks{
		OnApplied: func(e *domain.OperationEvent) {
			r.operations.WithLabelValues(e.Op, "applied").Inc()
			if d := e.Diff; d != nil {
				r.nodes.WithLabelValues("added").Add(float64(len(d.AddedNodes)))
				r.nodes.WithLabelValues("removed").Add(float64(len(d.RemovedNodes)))
				r.nodes.WithLabelValues("modified").Add(float64(len(d.ModifiedNodes)))
			}
		},
		OnRejected: func(e *domain.OperationEvent) {
			r.operations.WithLabelValues(e.Op, "rejected").Inc()
			r.faults.WithLabelValues(e.Op).Add(float64(len(e.Faults)))
		},
		OnCluster: func(e *domain.ClusterEvent) {
			r.clusters.WithLabelValues(e.Intent).Inc()
		},
		OnSynonymDropped: func(e *domain.SynonymEvent) {
			r.synonyms.WithLabelValues(e.Entity).Inc()
		},
	}
}

// WriteTextfile writes the registry in the text exposition format. The file
// is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
