// Command ddgmesh inspects, smooths and flattens triangle meshes stored as .obj, .gltf or .glb files.
package main

import (
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/solarlune/ddg/linalg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfg = viper.New()

func main() {
	log.SetFlags(0)
	log.SetPrefix("ddgmesh: ")
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {

	root := &cobra.Command{
		Use:          "ddgmesh",
		Short:        "Discrete differential geometry tools for triangle meshes",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ./ddgmesh.yaml if present)")
	root.PersistentFlags().Bool("verbose", false, "log timings and solver details")
	root.PersistentFlags().String("solver", "auto", "linear solver: auto, dense or iterative")
	root.PersistentFlags().String("mesh", "", "name of the mesh to use from a glTF file (default: the first one)")

	root.AddCommand(
		newInfoCommand(),
		newSmoothCommand(),
		newParamCommand(),
		newCurvatureCommand(),
	)

	return root

}

// loadConfig layers the command's flags over DDGMESH_* environment variables over the config file.
func loadConfig(cmd *cobra.Command) error {

	cfg.SetEnvPrefix("ddgmesh")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if err := cfg.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := cfg.GetString("config"); path != "" {
		cfg.SetConfigFile(path)
	} else {
		cfg.SetConfigName("ddgmesh")
		cfg.AddConfigPath(".")
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading config")
		}
	} else if cfg.GetBool("verbose") {
		log.Printf("using config file %s", cfg.ConfigFileUsed())
	}

	return nil

}

func solverFromConfig() (linalg.Solver, error) {
	switch strings.ToLower(cfg.GetString("solver")) {
	case "", "auto":
		return linalg.NewAutoSolver(), nil
	case "dense":
		return linalg.NewDenseSolver(), nil
	case "iterative":
		return linalg.NewIterativeSolver(), nil
	}
	return nil, errors.Errorf("unknown solver %q (want auto, dense or iterative)", cfg.GetString("solver"))
}
