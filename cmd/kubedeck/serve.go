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
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/stefanprodan/kubedeck/internal/backend"
	"github.com/stefanprodan/kubedeck/internal/chartrepo"
	"github.com/stefanprodan/kubedeck/internal/dashboard"
	"github.com/stefanprodan/kubedeck/internal/i18n"
	"github.com/stefanprodan/kubedeck/internal/pagination"
	"github.com/stefanprodan/kubedeck/internal/resource"
	"github.com/stefanprodan/kubedeck/internal/runtime"
	"github.com/stefanprodan/kubedeck/internal/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard pages and the REST API",
	Example: `  # Serve the dashboard on the default port
  kubedeck serve

  # Serve the chart repositories only, without connecting to a cluster
  kubedeck serve --no-cluster --listen 127.0.0.1:8080

  # Serve the pages with translated strings
  kubedeck serve --language fr --messages ./messages-fr.yaml
`,
	RunE: runServeCmd,
}

type serveFlags struct {
	listen         string
	noCluster      bool
	language       string
	messages       string
	itemsPerPage   int
	shutdownPeriod time.Duration
}

var serveArgs = defaultServeFlags()

func defaultServeFlags() serveFlags {
	return serveFlags{
		listen:         ":9090",
		language:       "en",
		itemsPerPage:   pagination.DefaultItemsPerPage,
		shutdownPeriod: 10 * time.Second,
	}
}

// serveContext returns the context the server runs in,
// tests replace it to stop the server.
var serveContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	serveCmd.Flags().StringVar(&serveArgs.listen, "listen", serveArgs.listen,
		"The address the server listens on.")
	serveCmd.Flags().BoolVar(&serveArgs.noCluster, "no-cluster", serveArgs.noCluster,
		"Serve without connecting to a cluster, the release and deployment endpoints answer 503.")
	serveCmd.Flags().StringVar(&serveArgs.language, "language", serveArgs.language,
		"The language of the page strings, e.g. 'en' or 'fr'.")
	serveCmd.Flags().StringVar(&serveArgs.messages, "messages", serveArgs.messages,
		"Path to a YAML file with the translated strings for the selected language.")
	serveCmd.Flags().IntVar(&serveArgs.itemsPerPage, "items-per-page", serveArgs.itemsPerPage,
		"The number of items the list pages request.")
	serveCmd.Flags().DurationVar(&serveArgs.shutdownPeriod, "shutdown-period", serveArgs.shutdownPeriod,
		"The length of time to wait for in-flight requests on shutdown.")

	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	log := LoggerFrom(cmd.Context())

	catalog, err := newCatalog(serveArgs.language, serveArgs.messages)
	if err != nil {
		return err
	}

	home := chartrepo.NewHome(rootArgs.helmHome)
	if err := home.EnsureHome(); err != nil {
		return err
	}
	log.V(1).Info(fmt.Sprintf("chart repositories home %s", home.Path()))

	api := newBackendAPI(log, home)

	l, err := net.Listen("tcp", serveArgs.listen)
	if err != nil {
		return fmt.Errorf("listen on %s failed: %w", serveArgs.listen, err)
	}

	apiURL := rootArgs.apiURL.String()
	if apiURL == "" {
		apiURL, err = selfURL(l.Addr())
		if err != nil {
			l.Close()
			return err
		}
	}

	resources, err := resource.NewFactory(apiURL, nil)
	if err != nil {
		l.Close()
		return err
	}

	router, err := views.NewRouter(views.Deps{
		Resources:  resources,
		Pagination: pagination.NewService(serveArgs.itemsPerPage),
		Catalog:    catalog,
	})
	if err != nil {
		l.Close()
		return err
	}
	log.Info(fmt.Sprintf("pages fetch from %s", resources.BaseURL()))

	srv := dashboard.NewServer(serveArgs.listen, api, router, log)

	ctx, stop := serveContext()
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(l)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveArgs.shutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errc
}

// newBackendAPI connects the cluster readers unless --no-cluster is set.
// A cluster that can't be reached is logged and the readers stay disabled.
func newBackendAPI(log logr.Logger, home *chartrepo.Home) *backend.API {
	if serveArgs.noCluster {
		return backend.NewAPI(home, nil, nil)
	}

	rm, err := runtime.NewResourceManager(kubeconfigArgs)
	if err != nil {
		log.Error(err, "cluster readers disabled")
		return backend.NewAPI(home, nil, nil)
	}

	if v, err := runtime.ServerVersion(kubeconfigArgs); err != nil {
		log.Error(err, "cluster version unknown")
	} else {
		log.Info(fmt.Sprintf("connected to Kubernetes %s", v.String()))
	}

	return backend.NewAPI(home, runtime.NewReleaseStorage(rm), runtime.NewDeploymentReader(rm))
}

func newCatalog(lang, messages string) (*i18n.Catalog, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	catalog, err := views.NewCatalog(tag)
	if err != nil {
		return nil, err
	}
	if messages != "" {
		if err := catalog.Override(messages); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// selfURL returns the loopback URL of the listener,
// e.g. 'http://127.0.0.1:9090' for ':9090'.
func selfURL(addr net.Addr) (string, error) {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr.String(), err)
	}
	ip := net.ParseIP(host)
	if host == "" || ip == nil || ip.IsUnspecified() {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}
