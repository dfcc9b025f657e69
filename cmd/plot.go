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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/aerostudio/aerocalc/geometry"
	"github.com/aerostudio/aerocalc/panelmethod"
)

// plotCpDistribution writes Cp against the panel control-point x station.
// Panels are re-derived from the mesh with the same rule the solver used, so
// the point order matches the result's pressure-coefficient order.
func plotCpDistribution(mesh *geometry.SurfaceMesh, forces *panelmethod.AerodynamicForces, filename string) (err error) {
	var (
		panels []panelmethod.Panel
	)
	if panels, err = panelmethod.BuildPanels(mesh); err != nil {
		return
	}
	if len(panels) != len(forces.PressureCoefficients) {
		return fmt.Errorf("panel count %d does not match Cp count %d",
			len(panels), len(forces.PressureCoefficients))
	}
	pts := make(plotter.XYs, len(panels))
	for i := range panels {
		pts[i].X = panels[i].Control.X()
		pts[i].Y = forces.PressureCoefficients[i]
	}
	p := plot.New()
	p.Title.Text = "Surface Pressure Distribution"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "Cp"
	if err = plotutil.AddScatters(p, "Cp", pts); err != nil {
		return
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}

// plotPolar writes lift and drag coefficients against angle of attack
func plotPolar(alphaDeg, Cl, Cd []float64, filename string) (err error) {
	var (
		clPts = make(plotter.XYs, len(alphaDeg))
		cdPts = make(plotter.XYs, len(alphaDeg))
	)
	for i := range alphaDeg {
		clPts[i].X, clPts[i].Y = alphaDeg[i], Cl[i]
		cdPts[i].X, cdPts[i].Y = alphaDeg[i], Cd[i]
	}
	p := plot.New()
	p.Title.Text = "Force Coefficients vs Angle of Attack"
	p.X.Label.Text = "alpha [deg]"
	p.Y.Label.Text = "coefficient"
	if err = plotutil.AddLinePoints(p, "Cl", clPts, "Cd", cdPts); err != nil {
		return
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}
