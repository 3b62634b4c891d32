package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rewired-gh/lookingglass/internal/cli"
	"github.com/rewired-gh/lookingglass/internal/render"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", render.Colors.Error("Error:"), err)
		os.Exit(1)
	}
}
