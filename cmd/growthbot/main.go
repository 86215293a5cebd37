package main

import (
	"os"

	"github.com/precieux0/instagram-repo2/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
