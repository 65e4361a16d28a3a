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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apiv1 "github.com/stefanprodan/kubedeck/api/v1alpha1"
	"github.com/stefanprodan/kubedeck/internal/flags"
	"github.com/stefanprodan/kubedeck/internal/logger"
	"github.com/stefanprodan/kubedeck/internal/state"
	"github.com/stefanprodan/kubedeck/internal/views/chrome"
	"github.com/stefanprodan/kubedeck/internal/views/repositorylist"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Commands for managing chart repositories",
}

var repoAddCmd = &cobra.Command{
	Use:   "add [NAME] [URL]",
	Short: "Add a chart repository",
	Example: `  # Add a chart repository
  kubedeck repo add bitnami https://charts.bitnami.com/bitnami
`,
	Args: cobra.ExactArgs(2),
	RunE: runRepoAddCmd,
}

var repoRemoveCmd = &cobra.Command{
	Use:     "remove [NAME]",
	Aliases: []string{"rm"},
	Short:   "Remove a chart repository",
	Example: `  # Remove a chart repository and its cached index
  kubedeck repo remove bitnami
`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRepoRemoveCmd,
	ValidArgsFunction: completeRepositoryList,
}

var repoUpdateCmd = &cobra.Command{
	Use:   "update [NAME]",
	Short: "Download the index of a chart repository",
	Example: `  # Download the index of the default repository
  kubedeck repo update stable
`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRepoUpdateCmd,
	ValidArgsFunction: completeRepositoryList,
}

func init() {
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoUpdateCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	rootCmd.AddCommand(repoCmd)
}

func runRepoAddCmd(cmd *cobra.Command, args []string) error {
	name, repoURL := args[0], args[1]

	var u flags.URL
	if err := u.Set(repoURL); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	actions, err := repositoryActions(ctx)
	if err != nil {
		return err
	}

	repo, err := actions.AddRepository(ctx, name, u.String())
	if err != nil {
		return fmt.Errorf("adding repository %s failed: %w", name, err)
	}

	log := loggerState(cmd.Context(), repositorylist.StateName, rootArgs.prettyLog)
	log.Info(fmt.Sprintf("repository %s added, %s",
		logger.ColorizeSubject(repo.Name), repositoryStatus(repo)))
	return nil
}

func runRepoUpdateCmd(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	actions, err := repositoryActions(ctx)
	if err != nil {
		return err
	}

	repo, err := actions.UpdateRepository(ctx, name)
	if err != nil {
		return fmt.Errorf("updating repository %s failed: %w", name, err)
	}

	log := loggerState(cmd.Context(), repositorylist.StateName, rootArgs.prettyLog)
	log.Info(fmt.Sprintf("repository %s updated, %s",
		logger.ColorizeSubject(repo.Name), repositoryStatus(repo)))
	return nil
}

func runRepoRemoveCmd(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	actions, err := repositoryActions(ctx)
	if err != nil {
		return err
	}

	if err := actions.RemoveRepository(ctx, name); err != nil {
		return fmt.Errorf("removing repository %s failed: %w", name, err)
	}

	log := loggerState(cmd.Context(), repositorylist.StateName, rootArgs.prettyLog)
	log.Info(fmt.Sprintf("repository %s %s", logger.ColorizeSubject(name), logger.ColorizeInfo("removed")))
	return nil
}

// repositoryStatus reports whether the index of the repository is cached.
func repositoryStatus(repo *apiv1.Repository) string {
	if repo.Phase == apiv1.RepositoryAvailable {
		return logger.ColorizeReady("index ready")
	}
	return logger.ColorizeWarning(fmt.Sprintf("index %s", strings.ToLower(repo.Phase)))
}

// repositoryActions enters the repository list page and returns
// the controller of its action bar.
func repositoryActions(ctx context.Context) (*repositorylist.ActionBarController, error) {
	router, err := newRouter(0)
	if err != nil {
		return nil, err
	}

	page, err := router.Navigate(ctx, repositorylist.StateName, state.Params{})
	if err != nil {
		return nil, err
	}

	return pageController[*repositorylist.ActionBarController](page, repositorylist.StateName, chrome.ActionbarViewName)
}
