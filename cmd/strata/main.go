package main

import (
	"fmt"
	"os"

	"github.com/strataquery/strata/cmd/strata/cli"
	"github.com/strataquery/strata/cmd/strata/cli/dashboard"
	"github.com/strataquery/strata/cmd/strata/cli/metric"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())
	root.AddCommand(cli.NewConfigCommand())
	root.AddCommand(cli.NewMigrateCommand())

	root.AddCommand(metric.NewMetricCommand())
	root.AddCommand(dashboard.NewDashboardCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
