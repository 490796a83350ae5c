package editor

import (
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// GeneratedIDPrefix starts the ids the tools allocate. Such ids carry no
// meaning, so they never become titles.
const GeneratedIDPrefix = "node_"

// AddNodeTitles titles every node with a hand-written id and no title key
// after its id. It returns the ids of the nodes it titled.
func AddNodeTitles(s *tree.Store) []string {
	var titled []string
	for _, n := range s.Nodes() {
		if strings.HasPrefix(n.ID, GeneratedIDPrefix) || n.Title != "" || n.Has(domain.KeyTitle) {
			continue
		}
		n.Title = n.ID
		titled = append(titled, n.ID)
	}
	if len(titled) > 0 {
		s.Invalidate()
	}
	return titled
}
