package writefiles

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/fem2d/utils"
)

// WriteMatrixMarket writes the materialized entries of A in Matrix Market
// coordinate format with one based indices, row by row.
func WriteMatrixMarket(w io.Writer, A *utils.SparseMatrix) (err error) {
	var (
		csr  = A.ToCSR()
		r, c = csr.Dims()
		bw   = bufio.NewWriter(w)
	)
	fmt.Fprintf(bw, "%%%%MatrixMarket matrix coordinate real general\n")
	fmt.Fprintf(bw, "%d %d %d\n", r, c, csr.NNZ())
	csr.DoNonZero(func(i, j int, v float64) {
		fmt.Fprintf(bw, "%d %d %.17g\n", i+1, j+1, v)
	})
	return bw.Flush()
}

func WriteMatrixMarketFile(fileName string, A *utils.SparseMatrix) (err error) {
	var file *os.File
	if file, err = os.Create(fileName); err != nil {
		return
	}
	if err = WriteMatrixMarket(file, A); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
