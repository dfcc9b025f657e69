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
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/aerostudio/aerocalc/InputParameters"
	"github.com/aerostudio/aerocalc/panelmethod"
	"github.com/aerostudio/aerocalc/utils"
)

type SweepModel struct {
	SolveModel
	From, To float64 // angle of attack range, degrees
	Steps    int
	CSVFile  string
}

type sweepPoint struct {
	AlphaDeg float64
	Forces   *panelmethod.AerodynamicForces
	Err      error
}

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep angle of attack and tabulate force coefficients",
	Long: `
Runs the force calculation across a range of angles of attack. Each angle is
an independent calculation, so the sweep fans out over parallel workers.`,
	Run: func(cmd *cobra.Command, args []string) {
		sw := &SweepModel{}
		sw.MeshFile, _ = cmd.Flags().GetString("meshFile")
		sw.CondFile, _ = cmd.Flags().GetString("conditionsFile")
		sw.PlotFile, _ = cmd.Flags().GetString("plot")
		sw.Normalize, _ = cmd.Flags().GetBool("normalize")
		sw.Workers, _ = cmd.Flags().GetInt("workers")
		sw.From, _ = cmd.Flags().GetFloat64("from")
		sw.To, _ = cmd.Flags().GetFloat64("to")
		sw.Steps, _ = cmd.Flags().GetInt("steps")
		sw.CSVFile, _ = cmd.Flags().GetString("output")
		if sw.Steps < 2 {
			fmt.Printf("error: sweep needs at least 2 steps, have %d\n", sw.Steps)
			os.Exit(1)
		}
		fp := processConditions(sw.CondFile)
		RunSweep(sw, fp)
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().StringP("meshFile", "F", "", "triangulated surface in Wavefront OBJ format")
	sweepCmd.Flags().StringP("conditionsFile", "I", "", "YAML file with flow conditions; AngleOfAttack is overridden by the sweep")
	sweepCmd.Flags().StringP("plot", "p", "", "write a Cl/Cd polar plot to this PNG file")
	sweepCmd.Flags().Bool("normalize", false, "center the mesh and scale it to unit size before solving")
	sweepCmd.Flags().IntP("workers", "w", 0, "parallel sweep workers (0 = all CPUs)")
	sweepCmd.Flags().Float64("from", -5, "first angle of attack [deg]")
	sweepCmd.Flags().Float64("to", 15, "last angle of attack [deg]")
	sweepCmd.Flags().IntP("steps", "s", 21, "number of sweep points")
	sweepCmd.Flags().StringP("output", "o", "", "write sweep results to this CSV file")
}

func RunSweep(sw *SweepModel, fp *InputParameters.FlowParameters) {
	var (
		mesh    = loadMesh(&sw.SolveModel)
		opts    = fp.SolverOptions()
		results = make([]sweepPoint, sw.Steps)
		pm      = utils.NewPartitionMap(sw.Workers, sw.Steps)
		wg      sync.WaitGroup
	)
	if sw.Workers == 0 {
		pm = utils.NewPartitionMap(panelmethod.DefaultOptions().Workers, sw.Steps)
	}
	// Each sweep point is a self-contained calculation over shared read-only
	// inputs; one worker per bucket
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			min, max := pm.GetBucketRange(np)
			for i := min; i < max; i++ {
				alphaDeg := sw.From + (sw.To-sw.From)*float64(i)/float64(sw.Steps-1)
				flow := fp.FlowState()
				flow.AngleOfAttack = alphaDeg * math.Pi / 180
				forces, err := panelmethod.CalculateForces(mesh, flow, opts)
				results[i] = sweepPoint{AlphaDeg: alphaDeg, Forces: forces, Err: err}
			}
		}(np)
	}
	wg.Wait()

	var (
		alphas, Cls, Cds []float64
	)
	fmt.Printf("%10s %12s %12s %12s %12s\n", "alpha", "Cl", "Cd", "Lift", "Drag")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%10.3f  failed: %s\n", r.AlphaDeg, r.Err.Error())
			continue
		}
		fmt.Printf("%10.3f %12.5f %12.5f %12.5f %12.5f\n",
			r.AlphaDeg, r.Forces.Cl, r.Forces.Cd, r.Forces.Lift, r.Forces.Drag)
		alphas = append(alphas, r.AlphaDeg)
		Cls = append(Cls, r.Forces.Cl)
		Cds = append(Cds, r.Forces.Cd)
	}

	if len(sw.CSVFile) != 0 {
		if err := writeSweepCSV(results, sw.CSVFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("Wrote sweep results to %s\n", sw.CSVFile)
	}
	if len(sw.PlotFile) != 0 {
		if err := plotPolar(alphas, Cls, Cds, sw.PlotFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("Wrote polar plot to %s\n", sw.PlotFile)
	}
}

func writeSweepCSV(results []sweepPoint, filename string) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer file.Close()
	w := csv.NewWriter(file)
	defer w.Flush()
	if err = w.Write([]string{"alpha_deg", "Cl", "Cd", "lift_N", "drag_N", "moment_Nm"}); err != nil {
		return
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		rec := []string{
			f(r.AlphaDeg), f(r.Forces.Cl), f(r.Forces.Cd),
			f(r.Forces.Lift), f(r.Forces.Drag), f(r.Forces.Moment),
		}
		if err = w.Write(rec); err != nil {
			return
		}
	}
	return
}
