package main

import (
	"context"
	"log"
	"os"

	"github.com/asaidimu/go-lister/cmd"
)

func main() {
	if err := cmd.App().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
