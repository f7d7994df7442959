package main

import (
	"alpenworks.io/resort-services/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
