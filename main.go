package main

import (
	"fmt"
	"os"

	"github.com/wisepythagoras/wordcliques/internal/cli"
	apperr "github.com/wisepythagoras/wordcliques/internal/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperr.ExitCode(err))
	}
}
