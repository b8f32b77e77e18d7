package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/navijation/writebuffer/storage/memtable"
	"github.com/navijation/writebuffer/util"
)

func fillTable(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: fill line_file")
	}

	table, err := loadTable(cmd.Args().First())
	if err != nil {
		return err
	}

	fmt.Printf(
		"Table\n"+
			"  ID: %s\n"+
			"  Entries: %d\n"+
			"  Size: %d bytes\n",
		table.Table().ID(),
		table.Table().Len(),
		table.Size(),
	)
	return nil
}

func inspectTable(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("usage: inspect line_file")
	}

	writable, err := loadTable(cmd.Args().First())
	if err != nil {
		return err
	}
	frozen := memtable.FreezeWAL(writable, 0)

	fmt.Printf("Table %s\n\nEntries:\n", frozen.Table().ID())

	iter := frozen.Table().Iter()
	entryNumber := 0
	for {
		record, exists, err := iter.NextEntry()
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		fmt.Printf("  - #%d: %s\n", entryNumber, formatRecord(&record))
		entryNumber++
	}

	fmt.Printf("\nSize: %d bytes\n", frozen.Table().Size())
	return nil
}

func mergeTables(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errors.New("usage: merge line_file_newest [line_file_older ...]")
	}

	var tables []*memtable.Table
	for i := 0; i < cmd.Args().Len(); i++ {
		writable, err := loadTable(cmd.Args().Get(i))
		if err != nil {
			return err
		}
		tables = append(tables, memtable.FreezeWAL(writable, uint64(i)).Table())
	}

	rng := memtable.FullRange()
	if start := cmd.String("start"); start != "" {
		rng.Start = util.Some(memtable.Bound{Key: []byte(start), Inclusive: true})
	}
	if end := cmd.String("end"); end != "" {
		rng.End = util.Some(memtable.Bound{Key: []byte(end)})
	}

	merged, err := memtable.MaterializeRange(tables, rng)
	if err != nil {
		return err
	}

	fmt.Printf("Merged view (%d records):\n", merged.Len())
	for {
		record, exists, err := merged.NextEntry()
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		fmt.Printf("  - %s\n", formatRecord(&record))
	}
	return nil
}
