package InputParameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParametersPoisson_Parse(t *testing.T) {
	fileInput := []byte(`
Title: Test Case
Subdivisions: 32
Problem: Sine
Coefficient: 2.5
Preconditioner: JACOBI
MaxIterations: 500
`)
	ip := NewInputParametersPoisson()
	require.NoError(t, ip.Parse(fileInput))
	require.NoError(t, ip.Validate())
	assert.Equal(t, "Test Case", ip.Title)
	assert.Equal(t, 32, ip.N)
	assert.Equal(t, "sine", ip.Problem)
	assert.Equal(t, "jacobi", ip.Preconditioner)
	assert.Equal(t, 2.5, ip.Coefficient)
	assert.Equal(t, 500, ip.MaxIterations)
	// Unset keys keep their defaults
	assert.Equal(t, 1.e-12, ip.Tolerance)
	assert.Equal(t, 1, ip.ParallelDegree)
	ip.Print()
}

func TestInputParametersPoisson_RoundTrip(t *testing.T) {
	ip := NewInputParametersPoisson()
	ip.VTKFile = "out.vtk"
	ip.N = 7
	data, err := ip.Marshal()
	require.NoError(t, err)
	var back InputParametersPoisson
	require.NoError(t, back.Parse(data))
	assert.Equal(t, *ip, back)

	assert.Contains(t, string(data), "Subdivisions: 7")
}

func TestInputParametersPoisson_ExampleFile(t *testing.T) {
	var ex InputParametersPoisson
	require.NoError(t, ex.Parse([]byte(ExampleFile)))
	require.NoError(t, ex.Validate())
	assert.Equal(t, 50, ex.N)
	assert.Equal(t, "quadratic", ex.Problem)
	assert.Equal(t, "ilu", ex.Preconditioner)
	assert.Equal(t, 1.e-12, ex.Tolerance)
	assert.Equal(t, "poisson.vtk", ex.VTKFile)
}

func TestInputParametersPoisson_SubdivisionsKey(t *testing.T) {
	ip := NewInputParametersPoisson()
	require.NoError(t, ip.Parse([]byte("Subdivisions: 50\n")))
	assert.Equal(t, 50, ip.N)
}

func TestInputParametersPoisson_Validate(t *testing.T) {
	for name, mod := range map[string]func(ip *InputParametersPoisson){
		"N":              func(ip *InputParametersPoisson) { ip.N = 0 },
		"Problem":        func(ip *InputParametersPoisson) { ip.Problem = "cubic" },
		"Preconditioner": func(ip *InputParametersPoisson) { ip.Preconditioner = "amg" },
		"Coefficient":    func(ip *InputParametersPoisson) { ip.Coefficient = -1 },
		"Tolerance":      func(ip *InputParametersPoisson) { ip.Tolerance = 2 },
		"MaxIterations":  func(ip *InputParametersPoisson) { ip.MaxIterations = -3 },
	} {
		ip := NewInputParametersPoisson()
		mod(ip)
		assert.Error(t, ip.Validate(), name)
	}
}

func TestInputParametersPoisson_ReadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("Subdivisions: 3\nProblem: constant\n"), 0o644))
	ip := NewInputParametersPoisson()
	require.NoError(t, ip.ReadFile(fileName))
	assert.Equal(t, 3, ip.N)
	assert.Equal(t, "constant", ip.Problem)

	require.NoError(t, os.WriteFile(fileName, []byte("Subdivisions: [1, 2\n"), 0o644))
	assert.Error(t, ip.ReadFile(fileName))
	assert.Error(t, ip.ReadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
