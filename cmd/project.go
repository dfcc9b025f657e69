/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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

	"github.com/spf13/cobra"

	"github.com/aerostudio/aerocalc/project"
)

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage .aero project bundles",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project under the projects directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := projectsRoot(cmd)
		p, err := project.Create(root, args[0])
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("Created project %q at %s\n", p.Name, p.Path)
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently opened first",
	Run: func(cmd *cobra.Command, args []string) {
		root := projectsRoot(cmd)
		projects, err := project.List(root)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if len(projects) == 0 {
			fmt.Printf("No projects found under %s\n", root)
			return
		}
		for _, p := range projects {
			fmt.Printf("%-24s last opened %s  %s\n", p.Name, p.LastOpened, p.Path)
		}
	},
}

func projectsRoot(cmd *cobra.Command) (root string) {
	root, _ = cmd.Flags().GetString("dir")
	if len(root) != 0 {
		return
	}
	var err error
	if root, err = project.DefaultDir(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.PersistentFlags().StringP("dir", "d", "", "projects directory (default ~/AeroProjects)")
}
