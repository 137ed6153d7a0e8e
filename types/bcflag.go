package types

import (
	"fmt"
)

// BCFLAG marks the boundary condition type carried by a mesh node.
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Dirichlet
)

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}
