package main

import (
	"time"

	"github.com/solarlune/ddg"
	"github.com/spf13/cobra"
)

func newSmoothCommand() *cobra.Command {

	defaults := ddg.DefaultSmoothOptions()

	cmd := &cobra.Command{
		Use:   "smooth <input> <output>",
		Short: "Smooth a mesh by implicit Laplacian diffusion",
		Long: "Smooth moves every vertex by solving (M - tλW) f' = M f for the X, Y and Z coordinates, where M is the mass\n" +
			"matrix and W the uniform or cotangent Laplacian. The output format follows the output file's extension.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {

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

			smoother := ddg.NewSmoother(&ddg.SmoothOptions{
				Weight:       weight,
				TimeStep:     cfg.GetFloat64("timestep"),
				Lambda:       cfg.GetFloat64("lambda"),
				Iterations:   cfg.GetInt("iterations"),
				IdentityMass: cfg.GetBool("identity-mass"),
				Solver:       solver,
			})

			start := time.Now()
			if err := smoother.Smooth(mesh); err != nil {
				return err
			}
			verbosef("smoothed with %s weights, t = %g, λ = %g, %d step(s) in %s",
				weight, smoother.Options.TimeStep, smoother.Options.Lambda, smoother.Options.Iterations, time.Since(start))

			return ddg.SaveMeshFile(args[1], mesh)

		},
	}

	cmd.Flags().String("weight", defaults.Weight.String(), "Laplacian weights: uniform or cotan")
	cmd.Flags().Float64("timestep", defaults.TimeStep, "time step t")
	cmd.Flags().Float64("lambda", defaults.Lambda, "diffusion constant λ")
	cmd.Flags().Int("iterations", defaults.Iterations, "number of implicit steps")
	cmd.Flags().Bool("identity-mass", defaults.IdentityMass, "use the identity as mass matrix")

	return cmd

}
