package main

import (
	"log"

	"github.com/psds-microservice/openapi-docs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
