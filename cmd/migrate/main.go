package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/see12357/TFYA-KR-KP/lib"
)

func main() {
	configPath := flag.String("config", "", "config file with a [history] section")
	flag.Parse()

	cfg, err := lib.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	db, err := sql.Open(cfg.History.Driver, cfg.History.DSN)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	migrations, err := lib.HistoryMigrations()
	if err != nil {
		panic(err)
	}

	ran, err := lib.RunMigrations(ctx, db, cfg.History.Driver, migrations)
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	for _, name := range ran {
		fmt.Println("applied", name)
	}
}
