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
	"github.com/spf13/cobra"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/backend"
	"github.com/stefanprodan/kubedeck/internal/flags"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the client and API version information.",
	Example: "kubedeck version -o yaml",
	RunE:    runVersionCmd,
}

type versionFlags struct {
	output flags.Output
}

var versionArgs = defaultVersionFlags()

func defaultVersionFlags() versionFlags {
	return versionFlags{
		output: flags.OutputYAML,
	}
}

func init() {
	versionCmd.Flags().VarP(&versionArgs.output, "output", "o", versionArgs.output.Description())
	rootCmd.AddCommand(versionCmd)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	info := map[string]string{}
	info["client"] = VERSION
	info["api"] = apiv1.GroupVersion.String()
	info["rest"] = backend.Prefix

	if versionArgs.output == flags.OutputTable {
		rows := [][]string{
			{"client", info["client"]},
			{"api", info["api"]},
			{"rest", info["rest"]},
		}
		printTable(cmd.OutOrStdout(), []string{"component", "version"}, rows)
		return nil
	}

	return printObject(cmd.OutOrStdout(), versionArgs.output, info)
}
