package main

import (
	"log"
	"time"

	"github.com/solarlune/ddg"
	"github.com/spf13/cobra"
)

func newParamCommand() *cobra.Command {

	defaults := ddg.DefaultParamOptions()
	layoutDefaults := ddg.DefaultUVLayoutOptions()

	cmd := &cobra.Command{
		Use:   "param <input> <output>",
		Short: "Compute UV coordinates by mapping a mesh with a boundary onto a disk or square",
		Long: "Param pins the longest boundary loop of the mesh onto a disk or the unit square and places the interior\n" +
			"vertices by solving the Laplace equation. The UVs are written as OBJ texture coordinates or glTF TEXCOORD_0.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {

			shape, err := ddg.ParseBoundaryShape(cfg.GetString("boundary"))
			if err != nil {
				return err
			}

			weight, err := ddg.ParseWeightScheme(cfg.GetString("weight"))
			if err != nil {
				return err
			}

			solver, err := solverFromConfig()
			if err != nil {
				return err
			}

			mesh, err := loadMesh(args[0])
			if err != nil {
				return err
			}

			param := ddg.NewParameterizer(&ddg.ParamOptions{
				Boundary: shape,
				Weight:   weight,
				Solver:   solver,
			})

			start := time.Now()
			if err := param.Flatten(mesh); err != nil {
				return err
			}
			verbosef("flattened onto a %s with %s weights in %s", shape, weight, time.Since(start))

			if flipped := mesh.FlippedUVFaces(); len(flipped) > 0 {
				log.Printf("warning: %d triangles are flipped in UV space", len(flipped))
			}

			if err := ddg.SaveMeshFile(args[1], mesh); err != nil {
				return err
			}

			if layout := cfg.GetString("layout"); layout != "" {
				return ddg.SaveUVLayoutPNG(layout, mesh, &ddg.UVLayoutOptions{
					Size:          cfg.GetInt("layout-size"),
					Margin:        layoutDefaults.Margin,
					EdgeWidth:     layoutDefaults.EdgeWidth,
					DistortionMax: layoutDefaults.DistortionMax,
				})
			}

			return nil

		},
	}

	cmd.Flags().String("boundary", defaults.Boundary.String(), "boundary shape: disk or square")
	cmd.Flags().String("weight", defaults.Weight.String(), "Laplacian weights: uniform or cotan")
	cmd.Flags().String("layout", "", "also save the UV layout as a PNG image at this path")
	cmd.Flags().Int("layout-size", layoutDefaults.Size, "width and height of the UV layout image")

	return cmd

}
