package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "memtable_tools",
		Usage: "build, inspect, and merge in-memory write buffers from line files",
		Commands: []*cli.Command{
			{
				Name:   "fill",
				Usage:  "build a table from a line file and report its footprint",
				Action: fillTable,
			},
			{
				Name:   "inspect",
				Usage:  "build a table from a line file and dump every entry",
				Action: inspectTable,
			},
			{
				Name:   "merge",
				Usage:  "merge several line files, newest first, into one sorted view",
				Action: mergeTables,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "start",
						Usage: "inclusive start key of the merged range",
					},
					&cli.StringFlag{
						Name:  "end",
						Usage: "exclusive end key of the merged range",
					},
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
