/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/notargets/fem2d/InputParameters"
	"github.com/notargets/fem2d/model_problems/Poisson2D"
	"github.com/notargets/fem2d/solvers"
	"github.com/notargets/fem2d/utils"
	"github.com/notargets/fem2d/writefiles"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ModelPoisson struct {
	InputFile string
	Graph     bool
	Wireframe bool
	Delay     int // Milliseconds the plot stays up
	Profile   string
	Perf      bool
}

// PoissonCmd represents the poisson command
var PoissonCmd = &cobra.Command{
	Use:   "poisson",
	Short: "Solve a manufactured Poisson problem on the unit square",
	Long: `
Solves -div(k grad u) = f on the unit square meshed with n x n cells, two triangles each.
Parameters come from the defaults, then the YAML file given with -I, then the config file,
FEM2D_* environment variables and flags.

fem2d poisson -n 50 --preconditioner ilu --vtk out.vtk`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			mp = &ModelPoisson{}
			ip *InputParameters.InputParametersPoisson
		)
		mp.InputFile, _ = cmd.Flags().GetString("inputParametersFile")
		mp.Graph = viper.GetBool("graph")
		mp.Wireframe = viper.GetBool("wireframe")
		mp.Delay = viper.GetInt("delay")
		mp.Profile = viper.GetString("profile")
		mp.Perf = viper.GetBool("perf")
		if ip, err = processInput(mp); err != nil {
			return
		}
		ip.Print()
		_, err = RunPoisson(mp, ip)
		return
	},
}

func init() {
	rootCmd.AddCommand(PoissonCmd)
	var (
		ip = InputParameters.NewInputParametersPoisson()
	)
	PoissonCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n"+InputParameters.ExampleFile)
	PoissonCmd.Flags().IntP("subdivisions", "n", ip.N, "subdivisions per side of the unit square")
	PoissonCmd.Flags().String("problem", ip.Problem, "manufactured problem: quadratic, sine or constant")
	PoissonCmd.Flags().Float64("coefficient", ip.Coefficient, "diffusion coefficient k")
	PoissonCmd.Flags().String("preconditioner", ip.Preconditioner, "preconditioner: none, jacobi or ilu")
	PoissonCmd.Flags().Float64("tolerance", ip.Tolerance, "solver tolerance relative to the initial residual")
	PoissonCmd.Flags().Int("maxIterations", ip.MaxIterations, "iteration cap, 0 uses the number of unknowns")
	PoissonCmd.Flags().IntP("parallel", "p", ip.ParallelDegree, "go routines for element kernels, 0 uses all CPUs")
	PoissonCmd.Flags().String("vtk", "", "write mesh and solution to this legacy VTK file")
	PoissonCmd.Flags().String("matrix", "", "write the system matrix to this Matrix Market file")
	PoissonCmd.Flags().BoolP("graph", "g", false, "display the solution")
	PoissonCmd.Flags().Bool("wireframe", false, "draw element edges over the solution")
	PoissonCmd.Flags().IntP("delay", "d", 60000, "milliseconds to keep the graph up")
	PoissonCmd.Flags().String("profile", "", "write a pprof profile of the run: cpu or mem")
	PoissonCmd.Flags().Bool("perf", false, "count CPU instructions of the solve (linux perf events)")
	if err := viper.BindPFlags(PoissonCmd.Flags()); err != nil {
		panic(err)
	}
}

// viperKeys maps configuration keys onto the input parameters they override.
var viperKeys = map[string]func(ip *InputParameters.InputParametersPoisson){
	"subdivisions":   func(ip *InputParameters.InputParametersPoisson) { ip.N = viper.GetInt("subdivisions") },
	"problem":        func(ip *InputParameters.InputParametersPoisson) { ip.Problem = viper.GetString("problem") },
	"coefficient":    func(ip *InputParameters.InputParametersPoisson) { ip.Coefficient = viper.GetFloat64("coefficient") },
	"preconditioner": func(ip *InputParameters.InputParametersPoisson) { ip.Preconditioner = viper.GetString("preconditioner") },
	"tolerance":      func(ip *InputParameters.InputParametersPoisson) { ip.Tolerance = viper.GetFloat64("tolerance") },
	"maxIterations":  func(ip *InputParameters.InputParametersPoisson) { ip.MaxIterations = viper.GetInt("maxIterations") },
	"parallel":       func(ip *InputParameters.InputParametersPoisson) { ip.ParallelDegree = viper.GetInt("parallel") },
	"vtk":            func(ip *InputParameters.InputParametersPoisson) { ip.VTKFile = viper.GetString("vtk") },
	"matrix":         func(ip *InputParameters.InputParametersPoisson) { ip.MatrixFile = viper.GetString("matrix") },
}

func processInput(mp *ModelPoisson) (ip *InputParameters.InputParametersPoisson, err error) {
	ip = InputParameters.NewInputParametersPoisson()
	if len(mp.InputFile) != 0 {
		if err = ip.ReadFile(mp.InputFile); err != nil {
			return
		}
	}
	for key, set := range viperKeys {
		if viper.IsSet(key) {
			set(ip)
		}
	}
	if err = ip.Validate(); err != nil {
		err = fmt.Errorf("invalid input parameters: %w\nExample File:%s", err, InputParameters.ExampleFile)
	}
	return
}

func RunPoisson(mp *ModelPoisson, ip *InputParameters.InputParametersPoisson) (c *Poisson2D.Poisson, err error) {
	var (
		pt           Poisson2D.ProblemType
		pc           Poisson2D.PreconditionerType
		instructions uint64
		perfErr      error
	)
	if pt, err = Poisson2D.NewProblemType(ip.Problem); err != nil {
		return
	}
	if pc, err = Poisson2D.NewPreconditionerType(ip.Preconditioner); err != nil {
		return
	}
	switch mp.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		return nil, fmt.Errorf("unknown profile type %q, must be cpu or mem", mp.Profile)
	}
	settings := solvers.Settings{Tolerance: ip.Tolerance, MaxIterations: ip.MaxIterations}
	if c, err = Poisson2D.NewPoisson(ip.N, ip.Coefficient, pt, pc, settings, ip.ParallelDegree, true); err != nil {
		return
	}
	if mp.Perf {
		instructions, perfErr, err = countInstructions(c.Solve)
		if perfErr != nil {
			log.Printf("perf: %v\n", perfErr)
		} else {
			log.Printf("perf: %d CPU instructions\n", instructions)
		}
	} else {
		err = c.Solve()
	}
	var ce *solvers.ConvergenceError
	if errors.As(err, &ce) {
		// The best iterate is still written out
		log.Printf("warning: %v\n", err)
	} else if err != nil {
		return
	}
	if len(ip.MatrixFile) != 0 {
		if err = writefiles.WriteMatrixMarketFile(ip.MatrixFile, c.A); err != nil {
			return
		}
		log.Printf("wrote %s\n", ip.MatrixFile)
	}
	if len(ip.VTKFile) != 0 {
		fields := []writefiles.NodalField{{Name: "u", Values: c.U}}
		if c.Problem.Exact != nil {
			exact := make([]float64, len(c.U))
			for i := range exact {
				exact[i] = c.Problem.Exact(c.Mesh.Coordinate(i))
			}
			fields = append(fields, writefiles.NodalField{Name: "u_exact", Values: exact})
		}
		if err = writefiles.WriteVTKFile(ip.VTKFile, ip.Title, c.Mesh, fields...); err != nil {
			return
		}
		log.Printf("wrote %s\n", ip.VTKFile)
	}
	if mp.Graph {
		if _, err = c.Plot(1920, 1920, mp.Wireframe); err != nil {
			return
		}
		utils.SleepFor(mp.Delay)
	}
	if ce != nil {
		err = ce
	}
	return
}
