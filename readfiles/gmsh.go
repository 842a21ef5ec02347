package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/airfoilgrid/types"
)

// Gmsh 2.2 element type numbers
const (
	gmshLine     = 1
	gmshTriangle = 2
	gmshQuad     = 3
)

// Physical group tags, the fluid is the 2D group and the boundaries are 1D groups
const (
	physFluid   = 1
	physAirfoil = 2
	physFar     = 3
)

const fluidName = "fluid"

func physicalTag(bc types.BCFLAG) int {
	if bc == types.BC_Far {
		return physFar
	}
	return physAirfoil
}

func gmshType(nVerts int) int {
	if nVerts == 4 {
		return gmshQuad
	}
	return gmshTriangle
}

func WriteGmsh(filename string, md *MeshData) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return fmt.Errorf("unable to create file %s: %w", filename, err)
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err = md.WriteGmsh(w); err != nil {
		return
	}
	return w.Flush()
}

/*
WriteGmsh emits the ASCII version 2.2 format. Node and element numbers are one
based. Boundary edges come first as line elements tagged with their marker's
physical group, followed by the area elements in the fluid group.
*/
func (md *MeshData) WriteGmsh(w io.Writer) (err error) {
	if err = md.check(); err != nil {
		return
	}
	var (
		ew     = &errWriter{w: w}
		flags  = md.markerOrder()
		nLines int
	)
	for _, bc := range flags {
		nLines += len(md.Markers[bc])
	}
	ew.printf("$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")
	ew.printf("$PhysicalNames\n%d\n", len(flags)+1)
	ew.printf("2 %d \"%s\"\n", physFluid, fluidName)
	for _, bc := range flags {
		ew.printf("1 %d \"%s\"\n", physicalTag(bc), bc)
	}
	ew.printf("$EndPhysicalNames\n")
	ew.printf("$Nodes\n%d\n", md.NumNodes())
	for i := range md.X {
		ew.printf("%d %.17g %.17g 0\n", i+1, md.X[i], md.Y[i])
	}
	ew.printf("$EndNodes\n")
	ew.printf("$Elements\n%d\n", nLines+len(md.Elements))
	id := 1
	for _, bc := range flags {
		tag := physicalTag(bc)
		for _, e := range md.Markers[bc] {
			ew.printf("%d %d 2 %d %d %d %d\n", id, gmshLine, tag, tag, e[0]+1, e[1]+1)
			id++
		}
	}
	for _, el := range md.Elements {
		ew.printf("%d %d 2 %d %d", id, gmshType(len(el)), physFluid, physFluid)
		for _, n := range el {
			ew.printf(" %d", n+1)
		}
		ew.printf("\n")
		id++
	}
	ew.printf("$EndElements\n")
	return ew.err
}

func ReadGmsh(filename string, verbose bool) (md *MeshData, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading Gmsh file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	return ReadGmshFrom(file)
}

/*
ReadGmshFrom reads an ASCII version 2.2 mesh in the plane. Triangles and quads
become elements and line elements become boundary edges, marked by the name of
their physical group. Lines in an unnamed group fall back to the tags written
by WriteGmsh. Other element types and unknown sections are skipped.
*/
func ReadGmshFrom(r io.Reader) (md *MeshData, err error) {
	var (
		scanner = bufio.NewScanner(r)
		gr      = &gmshReader{
			md:      &MeshData{Markers: make(map[types.BCFLAG][][2]int)},
			nodeIdx: make(map[int]int),
			names:   make(map[int]string),
		}
		haveFormat bool
	)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "$MeshFormat":
			err = readGmshFormat(scanner)
			haveFormat = true
		case "$PhysicalNames":
			err = gr.readPhysicalNames(scanner)
		case "$Nodes":
			err = gr.readNodes(scanner)
		case "$Elements":
			err = gr.readElements(scanner)
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				err = skipSection(scanner, "$End"+line[1:])
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	if !haveFormat {
		return nil, fmt.Errorf("no $MeshFormat section found")
	}
	md = gr.md
	if err = md.check(); err != nil {
		return nil, err
	}
	return
}

type gmshReader struct {
	md      *MeshData
	nodeIdx map[int]int    // file node number to zero based index
	names   map[int]string // physical tag to name, 1D groups only
}

// nextFields returns the fields of the next line of the section
func nextFields(scanner *bufio.Scanner, section string) ([]string, error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in %s", section)
	}
	return strings.Fields(scanner.Text()), nil
}

func readCount(scanner *bufio.Scanner, section string) (n int, err error) {
	var fields []string
	if fields, err = nextFields(scanner, section); err != nil {
		return
	}
	if len(fields) != 1 {
		return 0, fmt.Errorf("invalid count line in %s", section)
	}
	if n, err = strconv.Atoi(fields[0]); err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count in %s: %q", section, fields[0])
	}
	return
}

func readGmshFormat(scanner *bufio.Scanner) (err error) {
	var fields []string
	if fields, err = nextFields(scanner, "MeshFormat"); err != nil {
		return
	}
	if len(fields) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(fields[0], "2") {
		return fmt.Errorf("unsupported Gmsh version: %s", fields[0])
	}
	if fields[1] != "0" {
		return fmt.Errorf("only ASCII Gmsh files are supported")
	}
	return skipSection(scanner, "$EndMeshFormat")
}

func (gr *gmshReader) readPhysicalNames(scanner *bufio.Scanner) (err error) {
	var n int
	if n, err = readCount(scanner, "PhysicalNames"); err != nil {
		return
	}
	for i := 0; i < n; i++ {
		var fields []string
		if fields, err = nextFields(scanner, "PhysicalNames"); err != nil {
			return
		}
		if len(fields) < 3 {
			return fmt.Errorf("invalid physical name entry %d", i+1)
		}
		dim, errD := strconv.Atoi(fields[0])
		tag, errT := strconv.Atoi(fields[1])
		if errD != nil || errT != nil {
			return fmt.Errorf("invalid physical name entry %d", i+1)
		}
		if dim == 1 {
			gr.names[tag] = strings.Trim(strings.Join(fields[2:], " "), "\"")
		}
	}
	return skipSection(scanner, "$EndPhysicalNames")
}

func (gr *gmshReader) readNodes(scanner *bufio.Scanner) (err error) {
	var n int
	if n, err = readCount(scanner, "Nodes"); err != nil {
		return
	}
	gr.md.X, gr.md.Y = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		var (
			fields []string
			id     int
		)
		if fields, err = nextFields(scanner, "Nodes"); err != nil {
			return
		}
		if len(fields) < 4 {
			return fmt.Errorf("invalid node entry at line %d", i+1)
		}
		if id, err = strconv.Atoi(fields[0]); err != nil {
			return fmt.Errorf("invalid node ID: %w", err)
		}
		if _, dup := gr.nodeIdx[id]; dup {
			return fmt.Errorf("node %d defined twice", id)
		}
		gr.nodeIdx[id] = i
		if gr.md.X[i], err = strconv.ParseFloat(fields[1], 64); err != nil {
			return fmt.Errorf("invalid coordinate: %w", err)
		}
		if gr.md.Y[i], err = strconv.ParseFloat(fields[2], 64); err != nil {
			return fmt.Errorf("invalid coordinate: %w", err)
		}
	}
	return skipSection(scanner, "$EndNodes")
}

func (gr *gmshReader) lineFlag(tag int) (bc types.BCFLAG, err error) {
	if name, ok := gr.names[tag]; ok {
		return types.NewBCFLAG(name)
	}
	switch tag {
	case physAirfoil:
		return types.BC_Wall, nil
	case physFar:
		return types.BC_Far, nil
	}
	return bc, fmt.Errorf("line elements in physical group %d have no boundary name", tag)
}

func (gr *gmshReader) readElements(scanner *bufio.Scanner) (err error) {
	var n int
	if n, err = readCount(scanner, "Elements"); err != nil {
		return
	}
	for i := 0; i < n; i++ {
		var (
			fields                []string
			elType, nTags, nVerts int
		)
		if fields, err = nextFields(scanner, "Elements"); err != nil {
			return
		}
		if len(fields) < 3 {
			return fmt.Errorf("invalid element entry at line %d", i+1)
		}
		if elType, err = strconv.Atoi(fields[1]); err != nil {
			return fmt.Errorf("invalid element type: %w", err)
		}
		if nTags, err = strconv.Atoi(fields[2]); err != nil || nTags < 0 {
			return fmt.Errorf("invalid number of tags at element line %d", i+1)
		}
		switch elType {
		case gmshLine:
			nVerts = 2
		case gmshTriangle:
			nVerts = 3
		case gmshQuad:
			nVerts = 4
		default:
			continue
		}
		start := 3 + nTags
		if len(fields) < start+nVerts {
			return fmt.Errorf("element line %d expects %d nodes, got %d", i+1, nVerts, len(fields)-start)
		}
		verts := make([]int, nVerts)
		for j := range verts {
			id, errA := strconv.Atoi(fields[start+j])
			idx, ok := gr.nodeIdx[id]
			if errA != nil || !ok {
				return fmt.Errorf("element line %d references unknown node %s", i+1, fields[start+j])
			}
			verts[j] = idx
		}
		if elType != gmshLine {
			gr.md.Elements = append(gr.md.Elements, verts)
			continue
		}
		var (
			tag int
			bc  types.BCFLAG
		)
		if nTags != 0 {
			if tag, err = strconv.Atoi(fields[3]); err != nil {
				return fmt.Errorf("invalid tag: %w", err)
			}
		}
		if bc, err = gr.lineFlag(tag); err != nil {
			return
		}
		gr.md.Markers[bc] = append(gr.md.Markers[bc], [2]int{verts[0], verts[1]})
	}
	return skipSection(scanner, "$EndElements")
}

// skipSection advances past endTag
func skipSection(scanner *bufio.Scanner, endTag string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endTag {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF while looking for %s", endTag)
}
