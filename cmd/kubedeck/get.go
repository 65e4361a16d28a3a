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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/stefanprodan/kubedeck/internal/flags"
	"github.com/stefanprodan/kubedeck/internal/logger"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/deploymentdetail"
	"github.com/stefanprodan/kubedeck/internal/views/deploymentlist"
	"github.com/stefanprodan/kubedeck/internal/views/releaselist"
	"github.com/stefanprodan/kubedeck/internal/views/repositorylist"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Prints the content of a dashboard page",
	Long:  `The get command navigates to a dashboard page and prints the items fetched from the API.`,
}

type getFlags struct {
	allNamespaces bool
	output        flags.Output
	itemsPerPage  int
}

var getArgs = defaultGetFlags()

func defaultGetFlags() getFlags {
	return getFlags{
		output:       flags.OutputTable,
		itemsPerPage: 100,
	}
}

var getRepositoriesCmd = &cobra.Command{
	Use:     "repositories",
	Aliases: []string{"repository", "repo", "repos"},
	Short:   "Prints the chart repositories",
	Example: `  # List the chart repositories
  kubedeck get repositories
`,
	Args: cobra.NoArgs,
	RunE: runGetRepositoriesCmd,
}

var getReleasesCmd = &cobra.Command{
	Use:     "releases",
	Aliases: []string{"release", "rel"},
	Short:   "Prints the releases",
	Example: `  # List the releases in all namespaces as YAML
  kubedeck get releases -A -o yaml
`,
	Args: cobra.NoArgs,
	RunE: runGetReleasesCmd,
}

var getDeploymentsCmd = &cobra.Command{
	Use:     "deployments",
	Aliases: []string{"deploy"},
	Short:   "Prints the deployments",
	Example: `  # List the deployments in a namespace
  kubedeck get deployments -n apps
`,
	Args: cobra.NoArgs,
	RunE: runGetDeploymentsCmd,
}

var getDeploymentCmd = &cobra.Command{
	Use:   "deployment [NAME]",
	Short: "Prints the details of a deployment",
	Example: `  # Print the replica sets of a deployment
  kubedeck get deployment podinfo -n apps
`,
	Args: cobra.ExactArgs(1),
	RunE: runGetDeploymentCmd,
}

func init() {
	getCmd.PersistentFlags().BoolVarP(&getArgs.allNamespaces, "all-namespaces", "A", getArgs.allNamespaces,
		"List the requested object(s) across all namespaces.")
	getCmd.PersistentFlags().VarP(&getArgs.output, "output", "o", getArgs.output.Description())
	getCmd.PersistentFlags().IntVar(&getArgs.itemsPerPage, "items-per-page", getArgs.itemsPerPage,
		"The number of items to request.")

	getCmd.AddCommand(getRepositoriesCmd)
	getCmd.AddCommand(getReleasesCmd)
	getCmd.AddCommand(getDeploymentsCmd)
	getCmd.AddCommand(getDeploymentCmd)
	rootCmd.AddCommand(getCmd)
}

func (f getFlags) namespace() string {
	if f.allNamespaces {
		return ""
	}
	return *kubeconfigArgs.Namespace
}

func runGetRepositoriesCmd(cmd *cobra.Command, args []string) error {
	router, err := newRouter(getArgs.itemsPerPage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	ctrl, err := navigate[*repositorylist.RepositoryListController](ctx, router, repositorylist.StateName, nil)
	if err != nil {
		return err
	}

	if getArgs.output != flags.OutputTable {
		return printObject(cmd.OutOrStdout(), getArgs.output, ctrl.RepositoryList)
	}

	var rows [][]string
	for _, r := range ctrl.RepositoryList.Items {
		rows = append(rows, []string{r.Name, r.URL, logger.ColorizePhase(r.Phase)})
	}
	printTable(cmd.OutOrStdout(), []string{"name", "url", "phase"}, rows)
	return nil
}

func runGetReleasesCmd(cmd *cobra.Command, args []string) error {
	router, err := newRouter(getArgs.itemsPerPage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	ctrl, err := navigate[*releaselist.ReleaseListController](ctx, router, releaselist.StateName,
		state.Params{"namespace": getArgs.namespace()})
	if err != nil {
		return err
	}

	if getArgs.output != flags.OutputTable {
		return printObject(cmd.OutOrStdout(), getArgs.output, ctrl.ReleaseList)
	}

	var rows [][]string
	for _, r := range ctrl.ReleaseList.Items {
		row := []string{r.ObjectMeta.Name}
		if getArgs.allNamespaces {
			row = append(row, r.ObjectMeta.Namespace)
		}
		row = append(row,
			fmt.Sprintf("%s-%s", r.Chart, r.ChartVersion),
			fmt.Sprintf("%d", r.Revision),
			logger.ColorizePhase(r.Status),
			r.LastDeployed)
		rows = append(rows, row)
	}
	printTable(cmd.OutOrStdout(), withNamespaceColumn([]string{"name", "chart", "revision", "status", "last deployed"}), rows)
	return nil
}

func runGetDeploymentsCmd(cmd *cobra.Command, args []string) error {
	router, err := newRouter(getArgs.itemsPerPage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	ctrl, err := navigate[*deploymentlist.DeploymentListController](ctx, router, deploymentlist.StateName,
		state.Params{"namespace": getArgs.namespace()})
	if err != nil {
		return err
	}

	if getArgs.output != flags.OutputTable {
		return printObject(cmd.OutOrStdout(), getArgs.output, ctrl.DeploymentList)
	}

	var rows [][]string
	for _, d := range ctrl.DeploymentList.Items {
		row := []string{d.ObjectMeta.Name}
		if getArgs.allNamespaces {
			row = append(row, d.ObjectMeta.Namespace)
		}
		row = append(row,
			fmt.Sprintf("%d/%d", d.Pods.Current, d.Pods.Desired),
			strings.Join(d.ContainerImages, ","))
		rows = append(rows, row)
	}
	printTable(cmd.OutOrStdout(), withNamespaceColumn([]string{"name", "pods", "images"}), rows)
	return nil
}

func runGetDeploymentCmd(cmd *cobra.Command, args []string) error {
	router, err := newRouter(getArgs.itemsPerPage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	ctrl, err := navigate[*deploymentdetail.DeploymentDetailController](ctx, router, deploymentdetail.StateName,
		state.Params{"objectNamespace": *kubeconfigArgs.Namespace, "objectName": args[0]})
	if err != nil {
		return err
	}

	detail := ctrl.DeploymentDetail
	if getArgs.output != flags.OutputTable {
		return printObject(cmd.OutOrStdout(), getArgs.output, detail)
	}

	log := loggerState(cmd.Context(), deploymentdetail.StateName, rootArgs.prettyLog)
	log.Info(fmt.Sprintf("%s %s", detail.ObjectMeta.Name, detail.Status))

	var rows [][]string
	for _, rs := range ctrl.NewReplicaSetList.Items {
		rows = append(rows, replicaSetRow(rs.ObjectMeta.Name, "new", rs.Pods.Current, rs.Pods.Desired, rs.ContainerImages))
	}
	for _, rs := range detail.OldReplicaSetList.Items {
		rows = append(rows, replicaSetRow(rs.ObjectMeta.Name, "old", rs.Pods.Current, rs.Pods.Desired, rs.ContainerImages))
	}
	printTable(cmd.OutOrStdout(), []string{"replica set", "role", "pods", "images"}, rows)
	return nil
}

func replicaSetRow(name, role string, current, desired int32, images []string) []string {
	return []string{name, role, fmt.Sprintf("%d/%d", current, desired), strings.Join(images, ",")}
}

func withNamespaceColumn(header []string) []string {
	if !getArgs.allNamespaces {
		return header
	}
	return append([]string{header[0], "namespace"}, header[1:]...)
}

func printObject(writer io.Writer, output flags.Output, v any) error {
	var data []byte
	var err error
	switch output {
	case flags.OutputJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}
