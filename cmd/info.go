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

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/meshjoin/meshio"
	"github.com/notargets/meshjoin/utils"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a mesh file",
	Long: `
Prints global node and element counts, coordinate extents, element blocks
and nodal variables of a mesh file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := meshio.ReadMeshFile(args[0])
		if err != nil {
			return err
		}
		printMeshInfo(m)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printMeshInfo(m *meshio.Mesh) {
	if m.Title != "" {
		fmt.Printf("Title: %s\n", m.Title)
	}
	fmt.Printf("Global:\n")
	fmt.Printf("- dimension %d\n", m.Dim)
	fmt.Printf("- %s elements\n", utils.HumanNumber(m.NumElements()))
	fmt.Printf("- %s nodes\n", utils.HumanNumber(m.NumNodes()))
	if m.NumNodes() > 0 {
		fmt.Printf("- x extent [%g, %g]\n", floats.Min(m.X), floats.Max(m.X))
		fmt.Printf("- y extent [%g, %g]\n", floats.Min(m.Y), floats.Max(m.Y))
		if m.Dim == 3 {
			fmt.Printf("- z extent [%g, %g]\n", floats.Min(m.Z), floats.Max(m.Z))
		}
	}

	if len(m.Blocks) > 0 {
		fmt.Printf("\nBlocks [%d]:\n", len(m.Blocks))
		for _, b := range m.Blocks {
			fmt.Printf("- %d: %s elements (%s)\n",
				b.ID, utils.HumanNumber(b.NumElements()), b.ElementType)
		}
	}

	if len(m.VarNames) > 0 {
		fmt.Printf("\nNodal variables [%d]:\n", len(m.VarNames))
		for _, name := range m.VarNames {
			fmt.Printf("- %s\n", name)
		}
		fmt.Printf("\nTime steps: %d\n", len(m.Times))
	}
}
