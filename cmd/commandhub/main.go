package main

import (
	"os"

	_ "go.uber.org/automaxprocs"
	"k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/commandhub/cmd/commandhub/app"
)

func main() {
	ctx := server.SetupSignalContext()
	if err := app.NewCommandHubCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
