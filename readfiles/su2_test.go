package readfiles

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/grid2D"
	"github.com/notargets/airfoilgrid/mesh"
	"github.com/notargets/airfoilgrid/types"
)

func TestReadSU2(t *testing.T) {
	{ // Test reading the file structure
		reader := bufio.NewReader(bytes.NewReader(inputFile))
		dim, err := readNumber(reader, "NDIME")
		require.NoError(t, err)
		assert.Equal(t, 2, dim)
		nelem, err := readNumber(reader, "NELEM")
		require.NoError(t, err)
		assert.Equal(t, 22, nelem)
		skipLines(t, 22, reader)
		npts, err := readNumber(reader, "NPOIN")
		require.NoError(t, err)
		assert.Equal(t, 18, npts)
		skipLines(t, 18, reader)
		nmark, err := readNumber(reader, "NMARK")
		require.NoError(t, err)
		assert.Equal(t, 4, nmark)
		labels := []string{"farfield-left", "farfield-right", "farfield-top", "airfoil"}
		nptsBC := []int{2, 2, 4, 4}
		for n := 0; n < nmark; n++ {
			mark, err := readLabel(reader, "MARKER_TAG")
			require.NoError(t, err)
			assert.Equal(t, labels[n], mark)
			nm, err := readNumber(reader, "MARKER_ELEMS")
			require.NoError(t, err)
			assert.Equal(t, nptsBC[n], nm)
			skipLines(t, nm, reader)
		}
	}
	{ // Test read elements, vertices and merged markers
		md, err := ReadSU2From(bufio.NewReader(bytes.NewReader(inputFile)))
		require.NoError(t, err)
		require.Equal(t, 22, len(md.Elements))
		assert.Equal(t, []int{15, 11, 17}, md.Elements[21])
		Nv := md.NumNodes()
		assert.Equal(t, 18, Nv)
		assert.Equal(t, -7.100939331382065, md.X[Nv-1])
		assert.Equal(t, 2.889910324036197, md.Y[Nv-1])
		assert.Equal(t, 8, len(md.Markers[types.BC_Far]))
		assert.Equal(t, [][2]int{{0, 4}, {4, 5}, {5, 6}, {6, 1}}, md.Markers[types.BC_Wall])
	}
	{ // Test a keyword out of place is reported
		bad := bytes.Replace(inputFile, []byte("NPOIN="), []byte("NPOINTS="), 1)
		_, err := ReadSU2From(bufio.NewReader(bytes.NewReader(bad)))
		assert.Error(t, err)
	}
	{ // Test an unknown marker is reported
		bad := bytes.Replace(inputFile, []byte("MARKER_TAG= airfoil"), []byte("MARKER_TAG= inlet"), 1)
		_, err := ReadSU2From(bufio.NewReader(bytes.NewReader(bad)))
		assert.Error(t, err)
	}
	{ // Test a truncated file is reported
		_, err := ReadSU2From(bufio.NewReader(bytes.NewReader(inputFile[:400])))
		assert.Error(t, err)
	}
	{ // Test a missing file
		_, err := ReadSU2(filepath.Join(t.TempDir(), "missing.su2"), false)
		assert.Error(t, err)
	}
}

func TestWriteSU2(t *testing.T) {
	md := ogridMeshData(t, 16, 4)
	{ // Test round trip through a file
		fileName := filepath.Join(t.TempDir(), "ogrid.su2")
		require.NoError(t, WriteSU2(fileName, md))
		mdR, err := ReadSU2(fileName, false)
		require.NoError(t, err)
		assert.Equal(t, md.Elements, mdR.Elements)
		assert.Equal(t, md.X, mdR.X)
		assert.Equal(t, md.Y, mdR.Y)
		assert.Equal(t, md.Markers[types.BC_Wall], mdR.Markers[types.BC_Wall])
		assert.Equal(t, md.Markers[types.BC_Far], mdR.Markers[types.BC_Far])
	}
	{ // Test the file layout
		var buf bytes.Buffer
		require.NoError(t, md.WriteSU2(&buf))
		text := buf.String()
		assert.Contains(t, text, "NDIME= 2\n")
		assert.Contains(t, text, "NELEM= 64\n")
		assert.Contains(t, text, "NPOIN= 80\n")
		assert.Contains(t, text, "NMARK= 2\n")
		assert.Contains(t, text, "MARKER_TAG= airfoil\nMARKER_ELEMS= 16\n")
		assert.Contains(t, text, "MARKER_TAG= farfield\nMARKER_ELEMS= 16\n")
		assert.True(t, strings.Contains(text, "\n9 0 16 17 1 0\n"))
	}
	{ // Test triangles are written as type 5
		tm := triMesh(t)
		var buf bytes.Buffer
		require.NoError(t, FromTriMesh(tm).WriteSU2(&buf))
		mdR, err := ReadSU2From(bufio.NewReader(&buf))
		require.NoError(t, err)
		assert.Equal(t, len(tm.Tris), len(mdR.Elements))
		for _, el := range mdR.Elements {
			assert.Equal(t, 3, len(el))
		}
		assert.NotEmpty(t, mdR.Markers[types.BC_Wall])
		assert.NotEmpty(t, mdR.Markers[types.BC_Far])
	}
	{ // Test a bad element is refused
		bad := &MeshData{X: []float64{0, 1}, Y: []float64{0, 1}, Elements: [][]int{{0, 1}}}
		assert.Error(t, bad.WriteSU2(&bytes.Buffer{}))
		bad.Elements = [][]int{{0, 1, 5}}
		assert.Error(t, bad.WriteSU2(&bytes.Buffer{}))
	}
	{ // Test an unwritable path
		assert.Error(t, WriteSU2(filepath.Join(t.TempDir(), "nodir", "x.su2"), md))
	}
}

func skipLines(t *testing.T, n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		_, err := getLineNoComments(reader)
		require.NoError(t, err)
	}
}

// ogridMeshData is the initial O-grid around a unit circle, no smoothing
func ogridMeshData(t *testing.T, N, M int) *MeshData {
	cfg := grid2D.DefaultConfig()
	cfg.FarfieldRadius = 10
	cfg.FarfieldCenter = [2]float64{0, 0}
	cfg.RadialLayers = M
	cfg.Distribution = grid2D.Linear
	g, err := grid2D.Initialize(geometry2D.NewCircleContour(N, 1, geometry2D.Point{}), cfg)
	require.NoError(t, err)
	m, err := mesh.Assemble(g)
	require.NoError(t, err)
	return FromMesh(m)
}

func triMesh(t *testing.T) *geometry2D.TriMesh {
	airfoil := geometry2D.NewCircleContour(16, 1, geometry2D.Point{})
	far := geometry2D.NewCircleContour(16, 5, geometry2D.Point{})
	tm, err := geometry2D.TriangulateAirfoil(airfoil, far, geometry2D.UnstructuredOptions{MaxArea: 1})
	require.NoError(t, err)
	return tm
}

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 22
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= farfield-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= farfield-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= farfield-top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= airfoil
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)
