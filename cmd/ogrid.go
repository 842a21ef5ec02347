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
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/notargets/airfoilgrid/InputParameters"
	"github.com/notargets/airfoilgrid/geometry2D"
	"github.com/notargets/airfoilgrid/grid2D"
	"github.com/notargets/airfoilgrid/mesh"
	"github.com/notargets/airfoilgrid/readfiles"
)

type ModelGrid struct {
	Airfoil    string
	ParamFile  string
	OutputFile string
	Graph      bool
	Airfoil2D  bool // display the airfoil surfaces and camber line instead of generating a grid
	Zoom       float64 // half width of the plot window about the far field centre, 0 for the whole grid
}

// OGridCmd represents the OGrid command
var OGridCmd = &cobra.Command{
	Use:   "OGrid",
	Short: "Elliptic structured O-grid around an airfoil",
	Long: `
Builds an algebraic O-grid between the airfoil and a circular far field, then
smooths it by solving the elliptic generation equations. Output format is
chosen by the file extension, .su2 or .msh (Gmsh 2.2).

airfoilgrid OGrid -a NACA0012 -I params.yaml -o naca0012.su2`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		mg := &ModelGrid{}
		mg.Airfoil, _ = cmd.Flags().GetString("airfoil")
		mg.ParamFile, _ = cmd.Flags().GetString("inputParametersFile")
		mg.OutputFile, _ = cmd.Flags().GetString("outputFile")
		mg.Graph, _ = cmd.Flags().GetBool("graph")
		mg.Airfoil2D, _ = cmd.Flags().GetBool("plotAirfoil")
		mg.Zoom, _ = cmd.Flags().GetFloat64("zoom")
		var gp *InputParameters.GridParameters
		if gp, err = processInput(mg); err != nil {
			return
		}
		logger := newLogger()
		defer startProfile(logger)()
		return RunOGrid(mg, gp, logger)
	},
}

func init() {
	rootCmd.AddCommand(OGridCmd)
	OGridCmd.Flags().StringP("airfoil", "a", "", "NACA 4-digit airfoil code, overrides the input file")
	OGridCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for grid parameters like:\n\t- RadialLayers\n\t- FarfieldRadius")
	OGridCmd.Flags().StringP("outputFile", "o", "", "grid file to write, .su2 or .msh")
	OGridCmd.Flags().BoolP("graph", "g", false, "display the grid when done")
	OGridCmd.Flags().Bool("plotAirfoil", false, "display the airfoil surfaces and camber line, then stop")
	OGridCmd.Flags().Float64("zoom", 0, "half width of the plot window about the far field center")
}

func processInput(mg *ModelGrid) (gp *InputParameters.GridParameters, err error) {
	gp = InputParameters.Defaults()
	if len(mg.ParamFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(mg.ParamFile); err != nil {
			return nil, fmt.Errorf("unable to read input parameters file: %w", err)
		}
		if err = gp.Parse(data); err != nil {
			exampleFile := `
########################################
Title: "NACA 2412"
Airfoil: NACA2412
Spacing: COSLETE
SurfacePoints: 128
RadialLayers: 40
FarfieldRadius: 20
Scheme: gauss-seidel
Relaxation: 1.8
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			return nil, fmt.Errorf("unable to parse %s: %w", mg.ParamFile, err)
		}
	}
	if len(mg.Airfoil) != 0 {
		gp.Airfoil = mg.Airfoil
	}
	if len(mg.OutputFile) != 0 {
		if _, err = outputWriter(mg.OutputFile); err != nil {
			return nil, err
		}
	}
	return
}

type meshWriter func(filename string, md *readfiles.MeshData) error

func outputWriter(filename string) (w meshWriter, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".su2":
		w = readfiles.WriteSU2
	case ".msh":
		w = readfiles.WriteGmsh
	default:
		err = fmt.Errorf("unknown output format for [%s], use .su2 or .msh", filename)
	}
	return
}

func RunOGrid(mg *ModelGrid, gp *InputParameters.GridParameters, logger logr.Logger) (err error) {
	var (
		cfg     grid2D.Config
		contour geometry2D.Contour
		res     *grid2D.Result
		m       *mesh.Mesh
	)
	gp.Print()
	if mg.Airfoil2D {
		return plotAirfoil(gp)
	}
	if cfg, err = gp.ToConfig(); err != nil {
		return
	}
	if contour, err = gp.Contour(); err != nil {
		return
	}
	fmt.Print(cfg.Print())
	err = measure(logger, "elliptic solve", func() (err error) {
		res, err = grid2D.Generate(contour, cfg, logger)
		return
	})
	switch {
	case errors.Is(err, grid2D.ErrMaxIterations):
		logger.Info("using the unconverged grid", "residual", res.Residual)
	case err != nil:
		return
	}
	printResult(res)
	if m, err = mesh.Assemble(res.Grid); err != nil {
		return
	}
	md := readfiles.FromMesh(m)
	if len(mg.OutputFile) != 0 {
		var w meshWriter
		if w, err = outputWriter(mg.OutputFile); err != nil {
			return
		}
		if err = w(mg.OutputFile, md); err != nil {
			return
		}
		fmt.Printf("Wrote %d nodes, %d quads to %s\n", md.NumNodes(), len(md.Elements), mg.OutputFile)
	}
	if mg.Graph {
		md.PlotGrid(zoomWindow(cfg.FarfieldCenter, mg.Zoom))
	}
	return
}

func plotAirfoil(gp *InputParameters.GridParameters) (err error) {
	var (
		af      geometry2D.NACA4Airfoil
		spacing geometry2D.NodeSpacing
	)
	if _, err = gp.Contour(); err != nil {
		return
	}
	if af, err = geometry2D.ParseNACA4(gp.Airfoil); err != nil {
		return
	}
	if spacing, err = geometry2D.NewNodeSpacing(gp.Spacing); err != nil {
		return
	}
	readfiles.PlotAirfoil(af, spacing.Stations(gp.SurfacePoints/2+1), readfiles.Window{})
	return
}

func zoomWindow(center [2]float64, zoom float64) (w readfiles.Window) {
	if zoom <= 0 {
		return
	}
	return readfiles.Window{
		XMin: float32(center[0] - zoom), XMax: float32(center[0] + zoom),
		YMin: float32(center[1] - zoom), YMax: float32(center[1] + zoom),
	}
}

func printResult(res *grid2D.Result) {
	fmt.Printf("%s\t\t= Status\n", res.Status)
	fmt.Printf("[%d]\t\t\t= Iterations\n", res.Iterations)
	fmt.Printf("%8.5e\t\t= Residual\n", res.Residual)
	fmt.Printf("[%d]\t\t\t= Rejected Updates\n", res.RejectedUpdates)
	fmt.Printf("[%d]\t\t\t= Control Refreshes\n", res.ControlRefresh)
	fmt.Printf("%v\t\t= Elapsed\n", res.Elapsed)
	fmt.Print(res.Quality.Print())
}
