package main

import (
	"os"

	"alpenworks.io/resort-services/internal/ingest"
)

func main() {
	os.Exit(ingest.Main(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
