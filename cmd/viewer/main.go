// Viewer is a read-only CLI over the badger message archive. It opens
// the database with the lock guard bypassed so it can run alongside the
// engine process.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"

	"github.com/hwannow/PartyUp/internal"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	// Prefix narrows the scan, e.g. "msg:party:" or "msg:dm:".
	Prefix string `envconfig:"VIEWER_PREFIX" default:"msg:"`
	Limit  int    `envconfig:"VIEWER_LIMIT" default:"200"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	rows, err := collect(db, config.Prefix, config.Limit)
	if err != nil {
		log.Fatalf("Failed to scan archive: %v", err)
	}

	color.Green.Printf("Archive %s — %d message(s) under prefix %q\n\n",
		config.BadgerFilepath, len(rows), config.Prefix)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Channel", "Seq", "Sender", "Body", "At"})
	for _, row := range rows {
		table.Append([]string{
			row.Channel,
			fmt.Sprintf("%d", row.Seq),
			row.Sender,
			row.Body,
			row.At,
		})
	}
	table.Render()
}

func collect(db *badger.DB, prefix string, limit int) ([]internal.InspectRow, error) {
	var rows []internal.InspectRow
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if limit > 0 && len(rows) == limit {
				break
			}
			item := it.Item()
			err := item.Value(func(val []byte) error {
				rows = append(rows, internal.MessageRow(string(item.Key()), val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return rows, err
}
