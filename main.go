package main

import (
	"context"

	"inventory/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
