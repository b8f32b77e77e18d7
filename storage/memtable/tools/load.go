package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/navijation/writebuffer/storage/memtable"
	"github.com/navijation/writebuffer/storage/row"
	"github.com/navijation/writebuffer/util"
)

// loadTable builds a write buffer from a line file. Each line is either
// "key=value" for a put or "!key" for a delete; blank lines and lines
// starting with '#' are skipped.
func loadTable(path string) (*memtable.WritableTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer file.Close()

	table := memtable.NewWritableTable()
	attrs := row.Attributes{
		CreateTS: util.Some(time.Now().UnixMilli()),
	}

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue

		case strings.HasPrefix(line, "!"):
			table.Delete([]byte(line[1:]), attrs)

		default:
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				return nil, fmt.Errorf("%s:%d: expected key=value or !key", path, lineNumber)
			}
			table.Put([]byte(key), []byte(value), attrs)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	return table, nil
}

func formatRecord(record *row.Record) string {
	if record.Value.IsTombstone() {
		return fmt.Sprintf("%q -> <tombstone>", record.Key)
	}
	payload, _ := record.Value.Payload()
	return fmt.Sprintf("%q -> %q (%d bytes)", record.Key, payload, len(payload))
}
