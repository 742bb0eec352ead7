package main

import (
	"log"
	"twitchchat/internal/pkg/app"
)

func main() {
	if err := app.New(); err != nil {
		log.Fatal(err)
	}
}
