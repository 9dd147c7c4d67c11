package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/secmon-lab/misemon/pkg/cli"
	"github.com/secmon-lab/misemon/pkg/utils/apperr"
)

func main() {
	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		apperr.Handle(ctx, err)
		os.Exit(1)
	}
}
