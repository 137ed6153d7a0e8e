package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/fem2d/InputParameters"
	"github.com/notargets/fem2d/solvers"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		_ = viper.BindPFlags(PoissonCmd.Flags())
	})
}

func TestProcessInput(t *testing.T) {
	resetViper(t)
	fileName := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(`
Title: Layered
Subdivisions: 5
Problem: sine
Preconditioner: none
`), 0o644))
	mp := &ModelPoisson{InputFile: fileName}

	ip, err := processInput(mp)
	require.NoError(t, err)
	assert.Equal(t, 5, ip.N)
	assert.Equal(t, "sine", ip.Problem)
	assert.Equal(t, "none", ip.Preconditioner)

	// Configuration and flags override the problem file
	viper.Set("preconditioner", "Jacobi")
	viper.Set("maxIterations", 40)
	ip, err = processInput(mp)
	require.NoError(t, err)
	assert.Equal(t, "jacobi", ip.Preconditioner)
	assert.Equal(t, 40, ip.MaxIterations)
	assert.Equal(t, 5, ip.N)

	viper.Set("subdivisions", 0)
	_, err = processInput(mp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Example File")

	_, err = processInput(&ModelPoisson{InputFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestProcessInput_ConfigFile(t *testing.T) {
	resetViper(t)
	fileName := filepath.Join(t.TempDir(), "fem2d.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("subdivisions: 9\npreconditioner: jacobi\n"), 0o644))
	viper.SetConfigFile(fileName)
	require.NoError(t, viper.ReadInConfig())

	ip, err := processInput(&ModelPoisson{})
	require.NoError(t, err)
	assert.Equal(t, 9, ip.N)
	assert.Equal(t, "jacobi", ip.Preconditioner)
}

func TestRunPoisson(t *testing.T) {
	var (
		dir = t.TempDir()
		ip  = InputParameters.NewInputParametersPoisson()
	)
	ip.N = 6
	ip.VTKFile = filepath.Join(dir, "u.vtk")
	ip.MatrixFile = filepath.Join(dir, "A.mtx")
	c, err := RunPoisson(&ModelPoisson{}, ip)
	require.NoError(t, err)
	assert.LessOrEqual(t, c.MaxNodalError(), 1e-8)

	vtk, err := os.ReadFile(ip.VTKFile)
	require.NoError(t, err)
	assert.Contains(t, string(vtk), "POINTS 49 double")
	assert.Contains(t, string(vtk), "SCALARS u_exact double 1")

	mtx, err := os.ReadFile(ip.MatrixFile)
	require.NoError(t, err)
	lines := strings.Split(string(mtx), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "%%MatrixMarket"))
	assert.True(t, strings.HasPrefix(lines[1], "49 49 "))
}

func TestRunPoisson_Soft(t *testing.T) {
	ip := InputParameters.NewInputParametersPoisson()
	ip.N = 10
	ip.Preconditioner = "none"
	ip.MaxIterations = 2
	ip.VTKFile = filepath.Join(t.TempDir(), "partial.vtk")
	c, err := RunPoisson(&ModelPoisson{}, ip)
	var ce *solvers.ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, solvers.MaxItersReached, c.Result.Status)
	// The iterate is still exported
	_, statErr := os.Stat(ip.VTKFile)
	assert.NoError(t, statErr)

	_, err = RunPoisson(&ModelPoisson{Profile: "disk"}, InputParameters.NewInputParametersPoisson())
	assert.Error(t, err)
	ip.Problem = "cubic"
	_, err = RunPoisson(&ModelPoisson{}, ip)
	assert.Error(t, err)
}
