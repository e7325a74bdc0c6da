package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solarlune/armature"
	"github.com/solarlune/armature/log"
)

func newRootCommand() *cobra.Command {

	var configFile string

	cmd := &cobra.Command{
		Use:   "skeldump [file.gltf|file.glb]",
		Short: "Print the animation skeleton extracted from a glTF scene",
		Long: `skeldump extracts the skeleton of a glTF scene: every node that deforms a skinned mesh,
plus all of their ancestors, in parent-first order. Settings can also be given through
SKELDUMP_* environment variables (e.g. SKELDUMP_FORMAT=json) or a config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {

			if len(args) == 1 {
				if err := cmd.Flags().Set("input", args[0]); err != nil {
					return err
				}
			}

			cfg, err := readConfig(cmd.Flags(), configFile)
			if err != nil {
				return err
			}

			return run(cmd, cfg)

		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.StringP("input", "i", "", "glTF file to read")
	flags.Int("scene", -1, "index of the glTF scene to read; -1 reads the default scene")
	flags.String("root-name", "Root", "name of the root created for scenes with several top-level nodes")
	flags.Bool("prune", false, "only count joints that carry vertex weight as bones")
	flags.StringP("format", "f", formatTable, "output format: table, json or tree")
	flags.String("log-level", "warning", "log level: debug, info, warning or error")

	return cmd

}

func run(cmd *cobra.Command, cfg *Config) error {

	log.New(cmd.ErrOrStderr(), "skeldump ", 0)
	if err := log.SetLevel(log.ParseLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	if cfg.Input == "" {
		return fmt.Errorf("no input file given")
	}

	options := armature.DefaultGLTFLoadOptions()
	options.SceneIndex = cfg.Scene
	options.RootName = cfg.RootName
	options.PruneUnweightedJoints = cfg.Prune

	scene, err := armature.LoadGLTFFile(cfg.Input, options)
	if err != nil {
		return err
	}

	skeleton := armature.ExtractSkeleton(scene)

	log.Infof("%s: %d meshes, %d bones", cfg.Input, len(scene.Meshes()), skeleton.BoneCount())

	return writeSkeleton(cmd.OutOrStdout(), cfg.Format, scene.Name, skeleton)

}
