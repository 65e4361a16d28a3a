/*
Copyright 2024 Stefan Prodan

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

package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stefanprodan/kubedeck/internal/state"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Prints the table of dashboard states",
	Example: `  # List the states with their URL, parent, resolvers and views
  kubedeck routes
`,
	RunE: runRoutesCmd,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutesCmd(cmd *cobra.Command, args []string) error {
	router, err := newRouter(0)
	if err != nil {
		return err
	}

	printTable(cmd.OutOrStdout(), []string{"name", "url", "parent", "resolvers", "views"}, routeRows(router))
	return nil
}

func routeRows(router *state.Router) [][]string {
	var rows [][]string
	for _, s := range router.States() {
		name := s.Name
		if s.Abstract {
			name += " (abstract)"
		}

		resolvers := make([]string, 0, len(s.Resolve))
		for _, r := range s.Resolve {
			resolvers = append(resolvers, r.Name)
		}

		regions := make([]string, 0, len(s.Views))
		for region := range s.Views {
			if region == "" {
				region = "@"
			}
			regions = append(regions, region)
		}
		sort.Strings(regions)

		rows = append(rows, []string{
			name,
			router.URLPattern(s.Name),
			s.Parent,
			strings.Join(resolvers, ","),
			strings.Join(regions, ","),
		})
	}
	return rows
}
