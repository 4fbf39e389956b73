package main

import (
	"log"

	"github.com/AradGolbaghi/new-hw-planner/app"
)

func main() {
	if err := app.SetupAndRunServer(); err != nil {
		log.Fatal(err)
	}
}
