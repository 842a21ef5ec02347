package types

import (
	"fmt"
	"strings"
)

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Wall
	BC_Far
)

var BCNameMap = map[string]BCFLAG{
	"wall":     BC_Wall,
	"airfoil":  BC_Wall,
	"far":      BC_Far,
	"farfield": BC_Far,
}

// Marker names used when writing mesh files
var bcMarkers = [...]string{"none", "airfoil", "farfield"}

func (bc BCFLAG) String() string {
	if int(bc) < len(bcMarkers) {
		return bcMarkers[bc]
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

// NewBCFLAG parses a marker label, case insensitive, ignoring any "-suffix"
func NewBCFLAG(label string) (bc BCFLAG, err error) {
	var (
		ok  bool
		key = strings.ToLower(strings.TrimSpace(label))
	)
	if ind := strings.Index(key, "-"); ind > 0 {
		key = key[:ind]
	}
	if bc, ok = BCNameMap[key]; !ok {
		err = fmt.Errorf("unknown boundary marker [%s]", label)
	}
	return
}
