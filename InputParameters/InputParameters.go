package InputParameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file. The mesh size key is
// Subdivisions: a bare N is read as the boolean false by YAML 1.1.
type InputParametersPoisson struct {
	Title          string  `json:"Title"`
	N              int     `json:"Subdivisions"` // Per side of the unit square
	Problem        string  `json:"Problem"`      // quadratic, sine or constant
	Coefficient    float64 `json:"Coefficient"`
	Tolerance      float64 `json:"Tolerance"` // Relative to the initial residual
	MaxIterations  int     `json:"MaxIterations"`
	Preconditioner string  `json:"Preconditioner"` // none, jacobi or ilu
	ParallelDegree int     `json:"ParallelDegree"`
	VTKFile        string  `json:"VTKFile,omitempty"`
	MatrixFile     string  `json:"MatrixFile,omitempty"`
}

var (
	ProblemNames        = []string{"quadratic", "sine", "constant"}
	PreconditionerNames = []string{"none", "jacobi", "ilu"}
)

const ExampleFile = `
########################################
Title: "Manufactured quadratic"
Subdivisions: 50
Problem: quadratic # Can be "sine" or "constant"
Coefficient: 1.
Tolerance: 1.e-12
MaxIterations: 0 # Zero uses the number of unknowns
Preconditioner: ilu # Can be "none" or "jacobi"
ParallelDegree: 0 # Zero uses all CPUs
VTKFile: poisson.vtk
########################################
`

func NewInputParametersPoisson() *InputParametersPoisson {
	return &InputParametersPoisson{
		Title:          "Poisson",
		N:              16,
		Problem:        "quadratic",
		Coefficient:    1,
		Tolerance:      1.e-12,
		Preconditioner: "ilu",
		ParallelDegree: 1,
	}
}

// Parse overlays the YAML document on ip, keeping values it does not set.
func (ip *InputParametersPoisson) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersPoisson) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		return fmt.Errorf("parsing %s: %w", fileName, err)
	}
	return
}

func (ip *InputParametersPoisson) Marshal() ([]byte, error) {
	return yaml.Marshal(ip)
}

func (ip *InputParametersPoisson) Validate() (err error) {
	ip.Problem = strings.ToLower(strings.TrimSpace(ip.Problem))
	ip.Preconditioner = strings.ToLower(strings.TrimSpace(ip.Preconditioner))
	switch {
	case ip.N < 1:
		err = fmt.Errorf("N must be at least 1, have %d", ip.N)
	case !oneOf(ip.Problem, ProblemNames):
		err = fmt.Errorf("unknown problem %q, must be one of %v", ip.Problem, ProblemNames)
	case !oneOf(ip.Preconditioner, PreconditionerNames):
		err = fmt.Errorf("unknown preconditioner %q, must be one of %v", ip.Preconditioner, PreconditionerNames)
	case !(ip.Coefficient > 0):
		err = fmt.Errorf("coefficient must be positive, have %v", ip.Coefficient)
	case ip.Tolerance < 0 || ip.Tolerance >= 1:
		err = fmt.Errorf("tolerance must be in [0,1), have %v", ip.Tolerance)
	case ip.MaxIterations < 0:
		err = fmt.Errorf("MaxIterations must not be negative, have %d", ip.MaxIterations)
	}
	return
}

func (ip *InputParametersPoisson) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Subdivisions N\n", ip.N)
	fmt.Printf("[%s]\t\t= Problem\n", ip.Problem)
	fmt.Printf("%8.5f\t\t= Coefficient\n", ip.Coefficient)
	fmt.Printf("%8.2e\t\t= Tolerance\n", ip.Tolerance)
	fmt.Printf("[%d]\t\t\t\t= Max Iterations\n", ip.MaxIterations)
	fmt.Printf("[%s]\t\t\t= Preconditioner\n", ip.Preconditioner)
	fmt.Printf("[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	if len(ip.VTKFile) != 0 {
		fmt.Printf("[%s]\t= VTK File\n", ip.VTKFile)
	}
	if len(ip.MatrixFile) != 0 {
		fmt.Printf("[%s]\t= Matrix File\n", ip.MatrixFile)
	}
}

func oneOf(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
