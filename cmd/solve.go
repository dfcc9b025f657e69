/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/aerostudio/aerocalc/InputParameters"
	"github.com/aerostudio/aerocalc/geometry"
	"github.com/aerostudio/aerocalc/panelmethod"
	"github.com/aerostudio/aerocalc/readfiles"
)

type SolveModel struct {
	MeshFile  string
	CondFile  string
	PlotFile  string
	Normalize bool
	Profile   bool
	Workers   int
}

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run the panel-method force calculation on a mesh",
	Long: `
Reads a triangulated OBJ surface and a YAML flow-conditions file, runs the
source-panel pipeline and prints the integrated forces, coefficients and
the surface pressure summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		sm := &SolveModel{}
		sm.MeshFile, _ = cmd.Flags().GetString("meshFile")
		sm.CondFile, _ = cmd.Flags().GetString("conditionsFile")
		sm.PlotFile, _ = cmd.Flags().GetString("plot")
		sm.Normalize, _ = cmd.Flags().GetBool("normalize")
		sm.Profile, _ = cmd.Flags().GetBool("profile")
		sm.Workers, _ = cmd.Flags().GetInt("workers")
		fp := processConditions(sm.CondFile)
		RunSolve(sm, fp)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("meshFile", "F", "", "triangulated surface in Wavefront OBJ format")
	solveCmd.Flags().StringP("conditionsFile", "I", "", "YAML file with flow conditions like:\n\t- Density\n\t- Velocity\n\t- AngleOfAttack (degrees)")
	solveCmd.Flags().StringP("plot", "p", "", "write a Cp-vs-x plot to this PNG file")
	solveCmd.Flags().Bool("normalize", false, "center the mesh and scale it to unit size before solving")
	solveCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
	solveCmd.Flags().IntP("workers", "w", 0, "parallel degree for matrix assembly (0 = all CPUs)")
}

func processConditions(condFile string) (fp *InputParameters.FlowParameters) {
	if len(condFile) == 0 {
		err := fmt.Errorf("must supply a flow conditions file (-I, --conditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "NACA test case"
Density: 1.225
Velocity: 10.
AngleOfAttack: 4.  # degrees
Viscosity: 1.8e-5
CharacteristicLength: 1.
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(condFile)
	if err != nil {
		panic(err)
	}
	fp = &InputParameters.FlowParameters{}
	if err = fp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func loadMesh(sm *SolveModel) (mesh *geometry.SurfaceMesh) {
	var err error
	if len(sm.MeshFile) == 0 {
		err = fmt.Errorf("must supply a mesh file (-F, --meshFile) in Wavefront OBJ format")
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if mesh, err = readfiles.ReadOBJ(sm.MeshFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if sm.Normalize {
		readfiles.NormalizeMesh(mesh)
	}
	fmt.Printf("Read %s: %d vertices, %d panels\n", sm.MeshFile, len(mesh.Vertices), mesh.NumFaces())
	return
}

func RunSolve(sm *SolveModel, fp *InputParameters.FlowParameters) {
	if sm.Profile {
		defer profile.Start().Stop()
	}
	fp.Print()
	mesh := loadMesh(sm)

	opts := fp.SolverOptions()
	opts.Workers = sm.Workers
	flow := fp.FlowState()

	forces, err := panelmethod.CalculateForces(mesh, flow, opts)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	re := flow.ReynoldsNumber(fp.CharacteristicLength)

	fmt.Printf("Lift      = %12.5f [N]\n", forces.Lift)
	fmt.Printf("Drag      = %12.5f [N]\n", forces.Drag)
	fmt.Printf("Moment    = %12.5f [N.m]\n", forces.Moment)
	fmt.Printf("Cl        = %12.5f\n", forces.Cl)
	fmt.Printf("Cd        = %12.5f\n", forces.Cd)
	fmt.Printf("S_ref     = %12.5f [m2]\n", forces.ReferenceArea)
	fmt.Printf("Re        = %12.4e\n", re)
	fmt.Printf("Cp        = [min %8.4f, max %8.4f, mean %8.4f] over %d panels\n",
		forces.CpMin, forces.CpMax, forces.CpMean, len(forces.PressureCoefficients))

	if len(sm.PlotFile) != 0 {
		if err = plotCpDistribution(mesh, forces, sm.PlotFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("Wrote Cp distribution to %s\n", sm.PlotFile)
	}
}
