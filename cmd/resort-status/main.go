package main

import (
	"os"

	"alpenworks.io/resort-services/internal/status"
)

func main() {
	os.Exit(status.Main(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
