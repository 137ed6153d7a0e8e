//go:build cgo && netlib
// +build cgo,netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"log"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Building with -tags netlib routes every blas64 call in Dot, Axpy, Norm2
// and CopyVec through OpenBLAS.
func init() {
	blas64.Use(netblas.Implementation{})
	log.Println("using netlib BLAS for vector kernels")
}
