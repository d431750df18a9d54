package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/solarlune/ddg"
	"github.com/spf13/cobra"
)

func loadMesh(path string) (*ddg.Mesh, error) {
	start := time.Now()
	mesh, err := ddg.LoadMeshFile(path, cfg.GetString("mesh"))
	if err != nil {
		return nil, err
	}
	verbosef("loaded %s (%d vertices, %d triangles) in %s", path, len(mesh.Vertices), len(mesh.Faces), time.Since(start))
	return mesh, nil
}

func verbosef(format string, args ...interface{}) {
	if cfg.GetBool("verbose") {
		log.Printf(format, args...)
	}
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <mesh>",
		Short: "Print connectivity statistics of a mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			mesh, err := loadMesh(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "mesh:           %s\n", mesh.Name)
			fmt.Fprintf(out, "vertices:       %d\n", len(mesh.Vertices))
			fmt.Fprintf(out, "edges:          %d\n", len(mesh.Edges))
			fmt.Fprintf(out, "faces:          %d\n", len(mesh.Faces))
			fmt.Fprintf(out, "boundary loops: %d\n", len(mesh.Boundaries))
			for b := range mesh.Boundaries {
				fmt.Fprintf(out, "  loop %d:       %d vertices, length %.6g\n", b, len(mesh.LoopVertices(b)), mesh.LoopLength(b))
			}
			fmt.Fprintf(out, "euler:          %d\n", mesh.EulerCharacteristic())
			fmt.Fprintf(out, "genus:          %d\n", mesh.Genus())
			fmt.Fprintf(out, "bounds:         %s - %s\n", mesh.Dimensions[0], mesh.Dimensions[1])
			fmt.Fprintf(out, "area:           %.6g\n", mesh.TotalArea())

			total := mesh.TotalGaussianCurvature()
			fmt.Fprintf(out, "total K:        %.6g (%.4g x 2π)\n", total, total/(2*math.Pi))

			if mesh.HasUVs() {
				fmt.Fprintf(out, "uvs:            yes, %d flipped triangles\n", len(mesh.FlippedUVFaces()))
			} else {
				fmt.Fprintf(out, "uvs:            no\n")
			}

			if err := mesh.Validate(); err != nil {
				fmt.Fprintf(out, "valid:          no (%v)\n", err)
			} else {
				fmt.Fprintf(out, "valid:          yes\n")
			}

			return nil

		},
	}
}
