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
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/notargets/airfoilgrid/InputParameters"
	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/logging"
	"github.com/notargets/airfoilgrid/readfiles"
)

type ModelUnstructured struct {
	ModelGrid
	FarfieldPoints int
}

// UnstructuredCmd represents the Unstructured command
var UnstructuredCmd = &cobra.Command{
	Use:   "Unstructured",
	Short: "Unstructured triangle mesh around an airfoil",
	Long: `
Triangulates the region between the airfoil and a circular far field with
area and angle quality bounds. The elliptic solver is not used.

airfoilgrid Unstructured -a NACA0012 --maxArea 1 --minAngle 30 -o tri.msh`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mu := &ModelUnstructured{}
		mu.Airfoil, _ = cmd.Flags().GetString("airfoil")
		mu.ParamFile, _ = cmd.Flags().GetString("inputParametersFile")
		mu.OutputFile, _ = cmd.Flags().GetString("outputFile")
		mu.Graph, _ = cmd.Flags().GetBool("graph")
		mu.Zoom, _ = cmd.Flags().GetFloat64("zoom")
		mu.FarfieldPoints, _ = cmd.Flags().GetInt("farfieldPoints")
		var gp *InputParameters.GridParameters
		if gp, err = processInput(&mu.ModelGrid); err != nil {
			return
		}
		if cmd.Flags().Changed("maxArea") {
			gp.Unstructured.MaxArea, _ = cmd.Flags().GetFloat64("maxArea")
		}
		if cmd.Flags().Changed("minAngle") {
			gp.Unstructured.MinAngle, _ = cmd.Flags().GetFloat64("minAngle")
		}
		logger := newLogger()
		defer startProfile(logger)()
		return RunUnstructured(mu, gp, logger)
	},
}

func init() {
	rootCmd.AddCommand(UnstructuredCmd)
	opts := geometry2D.DefaultUnstructuredOptions()
	UnstructuredCmd.Flags().StringP("airfoil", "a", "", "NACA 4-digit airfoil code, overrides the input file")
	UnstructuredCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for grid parameters")
	UnstructuredCmd.Flags().StringP("outputFile", "o", "", "mesh file to write, .su2 or .msh")
	UnstructuredCmd.Flags().BoolP("graph", "g", false, "display the mesh when done")
	UnstructuredCmd.Flags().Float64("zoom", 0, "half width of the plot window about the far field center")
	UnstructuredCmd.Flags().Int("farfieldPoints", 64, "number of points on the far field circle")
	UnstructuredCmd.Flags().Float64("maxArea", opts.MaxArea, "largest triangle area, 0 leaves only the minimum angle to refine")
	UnstructuredCmd.Flags().Float64("minAngle", opts.MinAngle, "smallest triangle angle in degrees, at most 33")
}

func RunUnstructured(mu *ModelUnstructured, gp *InputParameters.GridParameters, logger logr.Logger) (err error) {
	var (
		airfoil geometry2D.Contour
		tm      *geometry2D.TriMesh
		center  = geometry2D.NewPoint(gp.FarfieldCenter[0], gp.FarfieldCenter[1])
	)
	if mu.FarfieldPoints < 3 {
		return fmt.Errorf("need at least 3 far field points, have %d", mu.FarfieldPoints)
	}
	if airfoil, err = gp.Contour(); err != nil {
		return
	}
	far := geometry2D.NewCircleContour(mu.FarfieldPoints, gp.FarfieldRadius, center)
	err = measure(logger, "triangulation", func() (err error) {
		tm, err = geometry2D.TriangulateAirfoil(airfoil, far, gp.UnstructuredOptions())
		return
	})
	if err != nil {
		return
	}
	logger.V(logging.VERBOSE).Info("triangulated", "points", len(tm.Points), "triangles", len(tm.Tris))
	fmt.Printf("[%d]\t\t\t= Nodes\n", len(tm.Points))
	fmt.Printf("[%d]\t\t\t= Triangles\n", len(tm.Tris))
	fmt.Printf("%8.5f\t\t= Min Angle\n", tm.MinAngle())
	md := readfiles.FromTriMesh(tm)
	if len(mu.OutputFile) != 0 {
		var w meshWriter
		if w, err = outputWriter(mu.OutputFile); err != nil {
			return
		}
		if err = w(mu.OutputFile, md); err != nil {
			return
		}
		fmt.Printf("Wrote %d nodes, %d triangles to %s\n", md.NumNodes(), len(md.Elements), mu.OutputFile)
	}
	if mu.Graph {
		readfiles.PlotTriMesh(tm.ToGraphMesh(), zoomWindow(gp.FarfieldCenter, mu.Zoom))
	}
	return
}
