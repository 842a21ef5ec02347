package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/airfoilgrid/types"
)

func TestWriteGmsh(t *testing.T) {
	md := ogridMeshData(t, 8, 2)
	{ // Test section layout and counts
		var buf bytes.Buffer
		require.NoError(t, md.WriteGmsh(&buf))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Equal(t, "$MeshFormat", lines[0])
		assert.Equal(t, "2.2 0 8", lines[1])
		assert.Equal(t, "$EndElements", lines[len(lines)-1])
		text := buf.String()
		assert.Contains(t, text, "$PhysicalNames\n3\n2 1 \"fluid\"\n1 2 \"airfoil\"\n1 3 \"farfield\"\n$EndPhysicalNames\n")
		assert.Contains(t, text, "$Nodes\n24\n1 1 0 0\n")
		// 8 airfoil edges, 8 farfield edges, 16 quads
		assert.Contains(t, text, "$Elements\n32\n")
		// fluid = 1, airfoil = 2, farfield = 3
		assert.Contains(t, text, "\n1 1 2 2 2 1 2\n")
		assert.Contains(t, text, "\n9 1 2 3 3 17 18\n")
		assert.Contains(t, text, "\n17 3 2 1 1 1 9 10 2\n")
	}
	{ // Test triangles use type 2
		var buf bytes.Buffer
		tm := triMesh(t)
		require.NoError(t, FromTriMesh(tm).WriteGmsh(&buf))
		var nTri int
		for _, line := range strings.Split(buf.String(), "\n") {
			fields := strings.Fields(line)
			if len(fields) == 8 && fields[1] == "2" {
				nTri++
			}
		}
		assert.Equal(t, len(tm.Tris), nTri)
	}
	{ // Test file output
		fileName := filepath.Join(t.TempDir(), "ogrid.msh")
		require.NoError(t, WriteGmsh(fileName, md))
		data, err := os.ReadFile(fileName)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("$MeshFormat\n")))
	}
}

func TestReadGmsh(t *testing.T) {
	{ // Test quads written then read back are unchanged
		md := ogridMeshData(t, 8, 2)
		var buf bytes.Buffer
		require.NoError(t, md.WriteGmsh(&buf))
		rd, err := ReadGmshFrom(&buf)
		require.NoError(t, err)
		assert.Equal(t, md.X, rd.X)
		assert.Equal(t, md.Y, rd.Y)
		assert.Equal(t, md.Elements, rd.Elements)
		assert.Equal(t, md.Markers, rd.Markers)
	}
	{ // Test a triangulation read back from a file
		md := FromTriMesh(triMesh(t))
		fileName := filepath.Join(t.TempDir(), "tri.msh")
		require.NoError(t, WriteGmsh(fileName, md))
		rd, err := ReadGmsh(fileName, false)
		require.NoError(t, err)
		assert.Equal(t, md.NumNodes(), rd.NumNodes())
		assert.Equal(t, md.Elements, rd.Elements)
		assert.Equal(t, md.Markers, rd.Markers)
	}
	{ // Test node numbering gaps, point elements and unnamed groups
		text := `$MeshFormat
2.2 0 8
$EndMeshFormat
$Comments
anything here
$EndComments
$Nodes
4
10 0 0 0
20 1 0 0
30 1 1 0
40 0 1 0
$EndNodes
$Elements
5
1 15 2 0 1 10
2 1 2 2 1 10 20
3 1 2 3 2 30 40
4 1 2 7 7 20 30
5 3 2 1 1 10 20 30 40
$EndElements
`
		_, err := ReadGmshFrom(strings.NewReader(text))
		// group 7 has no name and is not one of the written tags
		assert.Error(t, err)
		text = strings.Replace(text, "$MeshFormat", "$PhysicalNames\n1\n1 7 \"wall-upper\"\n$EndPhysicalNames\n$MeshFormat", 1)
		md, err := ReadGmshFrom(strings.NewReader(text))
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 1, 0}, md.X)
		assert.Equal(t, [][]int{{0, 1, 2, 3}}, md.Elements)
		assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, md.Markers[types.BC_Wall])
		assert.Equal(t, [][2]int{{2, 3}}, md.Markers[types.BC_Far])
	}
	{ // Test unsupported files are refused
		for _, text := range []string{
			"$MeshFormat\n4.1 0 8\n$EndMeshFormat\n",
			"$MeshFormat\n2.2 1 8\n$EndMeshFormat\n",
			"$Nodes\n1\n1 0 0 0\n$EndNodes\n",
			"$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n2\n1 0 0 0\n$EndNodes\n",
			"$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n1\n1 0 0 0\n$EndNodes\n$Elements\n1\n1 2 0 1 2 3\n$EndElements\n",
		} {
			_, err := ReadGmshFrom(strings.NewReader(text))
			assert.Error(t, err, text)
		}
		_, err := ReadGmsh(filepath.Join(t.TempDir(), "missing.msh"), false)
		assert.Error(t, err)
	}
}
