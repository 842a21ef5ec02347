package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/airfoilgrid/types"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
)

func su2Type(nVerts int) SU2ElementType {
	if nVerts == 4 {
		return ELType_Quadrilateral
	}
	return ELType_Triangle
}

func WriteSU2(filename string, md *MeshData) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err = md.WriteSU2(w); err != nil {
		return
	}
	return w.Flush()
}

func (md *MeshData) WriteSU2(w io.Writer) (err error) {
	if err = md.check(); err != nil {
		return
	}
	ew := &errWriter{w: w}
	ew.printf("%%\n%% Problem dimension\n%%\nNDIME= 2\n")
	ew.printf("%%\n%% Inner element connectivity\n%%\nNELEM= %d\n", len(md.Elements))
	for k, el := range md.Elements {
		ew.printf("%d", su2Type(len(el)))
		for _, n := range el {
			ew.printf(" %d", n)
		}
		ew.printf(" %d\n", k)
	}
	ew.printf("%%\n%% Node coordinates\n%%\nNPOIN= %d\n", md.NumNodes())
	for i := range md.X {
		ew.printf("%.17g %.17g %d\n", md.X[i], md.Y[i], i)
	}
	flags := md.markerOrder()
	ew.printf("%%\n%% Boundary elements\n%%\nNMARK= %d\n", len(flags))
	for _, bc := range flags {
		ew.printf("MARKER_TAG= %s\n", bc)
		ew.printf("MARKER_ELEMS= %d\n", len(md.Markers[bc]))
		for _, e := range md.Markers[bc] {
			ew.printf("%d %d %d\n", ELType_LINE, e[0], e[1])
		}
	}
	return ew.err
}

// errWriter keeps the first write error and skips the rest
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func ReadSU2(filename string, verbose bool) (md *MeshData, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	return ReadSU2From(bufio.NewReader(file))
}

// ReadSU2From reads a 2D SU2 mesh with triangle and quad elements
func ReadSU2From(reader *bufio.Reader) (md *MeshData, err error) {
	var (
		dim int
	)
	if dim, err = readNumber(reader, "NDIME"); err != nil {
		return
	}
	if dim != 2 {
		return nil, fmt.Errorf("only 2D meshes are supported, file has NDIME= %d", dim)
	}
	md = &MeshData{}
	if md.Elements, err = readElements(reader); err != nil {
		return nil, err
	}
	if md.X, md.Y, err = readVertices(reader); err != nil {
		return nil, err
	}
	if md.Markers, err = readBCs(reader); err != nil {
		return nil, err
	}
	if err = md.check(); err != nil {
		return nil, err
	}
	return
}

func readElements(reader *bufio.Reader) (elements [][]int, err error) {
	var (
		K    int
		line string
	)
	if K, err = readNumber(reader, "NELEM"); err != nil {
		return
	}
	elements = make([][]int, K)
	for k := 0; k < K; k++ {
		if line, err = getLineNoComments(reader); err != nil {
			return
		}
		var (
			fields = strings.Fields(line)
			nType  int
			nVerts int
		)
		if len(fields) == 0 {
			return nil, fmt.Errorf("empty element line %d", k)
		}
		if _, err = fmt.Sscanf(fields[0], "%d", &nType); err != nil {
			return nil, fmt.Errorf("unable to read element type from [%s]: %w", line, err)
		}
		switch SU2ElementType(nType) {
		case ELType_Triangle:
			nVerts = 3
		case ELType_Quadrilateral:
			nVerts = 4
		default:
			return nil, fmt.Errorf("unable to deal with element type %d, only triangles and quads", nType)
		}
		if len(fields) < nVerts+1 {
			return nil, fmt.Errorf("element line [%s] has too few vertices", line)
		}
		elements[k] = make([]int, nVerts)
		for n := 0; n < nVerts; n++ {
			if _, err = fmt.Sscanf(fields[n+1], "%d", &elements[k][n]); err != nil {
				return nil, fmt.Errorf("unable to read vertex from [%s]: %w", line, err)
			}
		}
	}
	return
}

func readVertices(reader *bufio.Reader) (X, Y []float64, err error) {
	var (
		Nv   int
		line string
	)
	if Nv, err = readNumber(reader, "NPOIN"); err != nil {
		return
	}
	X, Y = make([]float64, Nv), make([]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLineNoComments(reader); err != nil {
			return
		}
		if _, err = fmt.Sscanf(line, "%g %g", &X[i], &Y[i]); err != nil {
			return nil, nil, fmt.Errorf("unable to read coordinates from [%s]: %w", line, err)
		}
	}
	return
}

func readBCs(reader *bufio.Reader) (BCEdges map[types.BCFLAG][][2]int, err error) {
	var (
		NBCs, nEdges  int
		nType, v1, v2 int
		label, line   string
		bc            types.BCFLAG
	)
	if NBCs, err = readNumber(reader, "NMARK"); err != nil {
		return
	}
	BCEdges = make(map[types.BCFLAG][][2]int, NBCs)
	for n := 0; n < NBCs; n++ {
		if label, err = readLabel(reader, "MARKER_TAG"); err != nil {
			return
		}
		if bc, err = types.NewBCFLAG(label); err != nil {
			return
		}
		if nEdges, err = readNumber(reader, "MARKER_ELEMS"); err != nil {
			return
		}
		// Markers sharing a flag, "airfoil-upper" and "airfoil-lower" say, are merged
		for i := 0; i < nEdges; i++ {
			if line, err = getLineNoComments(reader); err != nil {
				return
			}
			if _, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil {
				return nil, fmt.Errorf("unable to read boundary edge from [%s]: %w", line, err)
			}
			if SU2ElementType(nType) != ELType_LINE {
				return nil, fmt.Errorf("BCs should only contain line elements in 2D, have type %d", nType)
			}
			BCEdges[bc] = append(BCEdges[bc], [2]int{v1, v2})
		}
	}
	return
}

func getToken(reader *bufio.Reader, keyword string) (token string, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		return "", fmt.Errorf("badly formed input line [%s], should have an =", line)
	}
	if key := strings.TrimSpace(line[:ind]); key != keyword {
		return "", fmt.Errorf("expected %s, found [%s]", keyword, key)
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader, keyword string) (label string, err error) {
	var (
		token string
	)
	if token, err = getToken(reader, keyword); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		return "", fmt.Errorf("unable to read label from token: [%s]", token)
	}
	return
}

func readNumber(reader *bufio.Reader, keyword string) (num int, err error) {
	var (
		token string
	)
	if token, err = getToken(reader, keyword); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		return 0, fmt.Errorf("unable to read number from token: [%s]", token)
	}
	return
}

// getLineNoComments skips blank lines and lines starting with %
func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && line[0] != '%' {
			return
		}
	}
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err == io.EOF {
		return "", fmt.Errorf("early end of file")
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
