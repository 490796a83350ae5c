package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestRecorder_Textfile(t *testing.T) {
	r := New()
	hooks := r.Hooks()

	hooks.OnApplied(&domain.OperationEvent{
		Op:   "splice",
		Diff: &domain.WorkspaceDiff{AddedNodes: []string{"a", "b"}, RemovedNodes: []string{"c"}},
	})
	hooks.OnRejected(&domain.OperationEvent{
		Op:     "merge",
		Faults: []domain.Fault{domain.DanglingReference("x", domain.KeyParent, "y")},
	})
	hooks.OnCluster(&domain.ClusterEvent{Intent: "#Z.hours"})
	hooks.OnSynonymDropped(&domain.SynonymEvent{SynonymRejection: domain.SynonymRejection{Entity: "fruit"}})

	path := filepath.Join(t.TempDir(), "arbor.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	for _, line := range []string{
		`arbor_operations_total{op="splice",outcome="applied"} 1`,
		`arbor_operations_total{op="merge",outcome="rejected"} 1`,
		`arbor_faults_total{op="merge"} 1`,
		`arbor_nodes_changed_total{change="added"} 2`,
		`arbor_nodes_changed_total{change="removed"} 1`,
		`arbor_clusters_total{intent="#Z.hours"} 1`,
		`arbor_synonyms_dropped_total{entity="fruit"} 1`,
	} {
		assert.Contains(t, out, line)
	}
}
