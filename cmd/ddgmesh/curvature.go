package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/solarlune/ddg"
	"github.com/spf13/cobra"
)

func newCurvatureCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "curvature <mesh>",
		Short: "Print per-vertex curvature statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			kind, err := ddg.ParseCurvatureKind(cfg.GetString("kind"))
			if err != nil {
				return err
			}

			mesh, err := loadMesh(args[0])
			if err != nil {
				return err
			}

			values := make([]float64, 0, len(mesh.Vertices))
			for v := range mesh.Vertices {
				if mesh.Vertices[v].Halfedge == ddg.None {
					continue
				}
				if !cfg.GetBool("boundary") && mesh.IsBoundaryVertex(v) {
					continue
				}
				values = append(values, mesh.Curvature(v, kind))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s curvature over %d vertices\n", kind, len(values))

			if len(values) > 0 {
				sorted := append([]float64{}, values...)
				sort.Float64s(sorted)
				sum := 0.0
				for _, k := range sorted {
					sum += k
				}
				fmt.Fprintf(out, "min:    %.6g\n", sorted[0])
				fmt.Fprintf(out, "median: %.6g\n", sorted[len(sorted)/2])
				fmt.Fprintf(out, "max:    %.6g\n", sorted[len(sorted)-1])
				fmt.Fprintf(out, "mean:   %.6g\n", sum/float64(len(sorted)))
			}

			if kind == ddg.CurvatureGaussian {
				total := mesh.TotalGaussianCurvature()
				fmt.Fprintf(out, "total:  %.6g (2πχ = %.6g)\n", total, 2*math.Pi*float64(mesh.EulerCharacteristic()))
			}

			if path := cfg.GetString("csv"); path != "" {
				return writeCurvatureCSV(path, mesh, kind)
			}

			return nil

		},
	}

	cmd.Flags().String("kind", ddg.CurvatureMean.String(), "curvature: mean, gaussian, min or max")
	cmd.Flags().Bool("boundary", false, "include boundary vertices in the statistics")
	cmd.Flags().String("csv", "", "write every vertex's position and curvature to this CSV file")

	return cmd

}

func writeCurvatureCSV(path string, mesh *ddg.Mesh, kind ddg.CurvatureKind) error {

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	w.Write([]string{"vertex", "x", "y", "z", "boundary", kind.String()})

	format := func(f float64) string {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	for v, vertex := range mesh.Vertices {
		value := 0.0
		if vertex.Halfedge != ddg.None {
			value = mesh.Curvature(v, kind)
		}
		w.Write([]string{
			strconv.Itoa(v),
			format(vertex.Position.X),
			format(vertex.Position.Y),
			format(vertex.Position.Z),
			strconv.FormatBool(mesh.IsBoundaryVertex(v)),
			format(value),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return err
	}

	return file.Close()

}
