package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/shoestock/internal/admin"
	"github.com/dmitrijs2005/shoestock/internal/server/config"
)

const usage = `usage:
  cli register              register a worker account
  cli import <dir> <type>   bulk-load shoes from a chat export folder
  cli backup                upload stored shoe images to object storage`

func main() {

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := admin.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	switch command {
	case "register":
		err = app.Register(ctx)
	case "import":
		if len(os.Args) < 4 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		err = app.Import(ctx, os.Args[2], os.Args[3])
	case "backup":
		err = app.Backup(ctx)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}
