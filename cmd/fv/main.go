package main

import (
	"log"

	"filevault/cmd/fv/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		log.Fatal(err)
	}
}
