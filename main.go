package main

import (
	"context"
	"invoice-service/cli"
	"log"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
