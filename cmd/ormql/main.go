// Command ormql compiles declarative ASTs to SQL.
package main

import (
	"os"

	"github.com/zoobzio/ormql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
