package main

import (
	"github.com/NVIDIA/restaurant-gateway/pkg/cli"
)

func main() {
	cli.Execute()
}
