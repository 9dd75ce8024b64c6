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
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/meshjoin/mesh"
	"github.com/notargets/meshjoin/meshio"
)

// JoinParameters are the optional join settings read from a YAML parameters
// file (-P, --params)
type JoinParameters struct {
	Title             string `yaml:"Title"`
	ValidateVariables *bool  `yaml:"ValidateVariables"`
}

func (jp *JoinParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, jp)
}

func (jp *JoinParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", jp.Title)
	if jp.ValidateVariables != nil {
		fmt.Printf("[%v]\t\t\t= ValidateVariables\n", *jp.ValidateVariables)
	}
}

type joinOptions struct {
	params  *JoinParameters
	verbose bool
}

// joinCmd represents the join command
var joinCmd = &cobra.Command{
	Use:   "join [inputs...] [output]",
	Short: "Join mesh partition files into a single output mesh",
	Long: `
Joins multiple mesh partition files into a single mesh. Nodes coincident
within the snap tolerance are merged, element blocks with the same id are
unioned, and nodal variable time series are scattered into the global node
numbering. Inputs are processed in argument order; for nodes shared between
files the last file's variable values win.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 {
			return cmd.Help()
		}
		var opts joinOptions
		opts.verbose, _ = cmd.Flags().GetBool("verbose")
		if pf, _ := cmd.Flags().GetString("params"); pf != "" {
			data, err := os.ReadFile(pf)
			if err != nil {
				return err
			}
			jp := &JoinParameters{}
			if err = jp.Parse(data); err != nil {
				return fmt.Errorf("%s: %w", pf, err)
			}
			if opts.verbose {
				jp.Print()
			}
			opts.params = jp
		}
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}
		return runJoin(args[:len(args)-1], args[len(args)-1], opts)
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
	joinCmd.Flags().StringP("params", "P", "", "YAML parameters file with join settings")
	joinCmd.Flags().BoolP("verbose", "v", false, "print per-file join progress")
	joinCmd.Flags().Bool("profile", false, "write a CPU profile for the join")
}

func runJoin(inputs []string, output string, opts joinOptions) error {
	j := mesh.NewJoiner()
	j.Verbose = opts.verbose
	if opts.params != nil {
		j.Title = opts.params.Title
		if opts.params.ValidateVariables != nil {
			j.ValidateVariables = *opts.params.ValidateVariables
		}
	}

	for _, path := range inputs {
		m, err := meshio.ReadMeshFile(path)
		if err != nil {
			return err
		}
		if err = j.Ingest(path, m); err != nil {
			return err
		}
	}

	w, err := meshio.CreateMeshFile(output)
	if err != nil {
		return err
	}
	if err = j.Emit(w); err != nil {
		w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	if opts.verbose {
		fmt.Printf("wrote %s: %d nodes\n", output, j.NumNodes())
	}
	return nil
}
