package main

import (
	"os"

	"alpenworks.io/resort-services/internal/web/resort_web"
)

func main() {
	os.Exit(resort_web.Main(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
