package benchmarks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/pg2hda/internal/input"
	"github.com/comalice/pg2hda/internal/pgraph"
	"github.com/comalice/pg2hda/testutil"
)

func TestGeneratedSystems(t *testing.T) {
	tests := []struct {
		name  string
		doc   input.Document
		ranks []int
	}{
		{"ring 2x3 is a torus", GenRingDocument(2, 3), []int{9, 18, 9}},
		{"ring 1x4 is a cycle", GenRingDocument(1, 4), []int{4, 4}},
		{"shared counter commutes", GenSharedDocument(2), []int{4, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalDocument(tt.doc)
			require.NoError(t, err)

			sys := pgraph.NewSystem("", pgraph.ModeCurrent)
			require.NoError(t, input.ReadYAML(sys, bytes.NewReader(data), tt.doc.Name+".yaml"))
			assert.Equal(t, tt.doc.Name, sys.Name)

			cx := testutil.Build(t, sys)
			assert.Equal(t, tt.ranks, cx.Ranks())
		})
	}
}
