package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"iter"
	"net/http"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hwannow/PartyUp/domain"
)

//go:embed inspect.html
var templatesFS embed.FS

// InspectRow is one archived message rendered on the inspect page.
type InspectRow struct {
	Key     string
	Channel string
	Seq     uint64
	Sender  string
	Body    string
	At      string
}

type StatsProvider func() map[string]any

// PartiesProvider feeds the live party listing; LiveReader feeds the
// live channel read endpoint. Both come from the service layer, passed
// as functions to keep this package free of service dependencies.
type PartiesProvider func() []domain.Party

type LiveReader func(channel domain.ChannelID, sinceSeq uint64) (iter.Seq[domain.ChatMessage], error)

type PageData struct {
	Prefix  string
	Items   []InspectRow
	Parties []domain.Party
	Stats   map[string]any
}

// StartDebugServer serves a read-only view over the badger message
// archive, the live party list, and engine stats. Debug tooling only; it
// is not part of the core contract and binds separately from anything
// user-facing.
func StartDebugServer(db *badger.DB, port int, statsProvider StatsProvider,
	parties PartiesProvider, read LiveReader) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "msg:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}
		if parties != nil {
			data.Parties = parties()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, MessageRow(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	// Live (in-memory) channel read, as opposed to the archived view
	// above. Useful to compare the ordering authority with the archive.
	mux.HandleFunc("/read", func(w http.ResponseWriter, r *http.Request) {
		if read == nil {
			http.Error(w, "live reads disabled", http.StatusNotFound)
			return
		}
		channel := domain.ChannelID(r.URL.Query().Get("channel"))
		since, _ := strconv.ParseUint(r.URL.Query().Get("since"), 10, 64)

		seq, err := read(channel, since)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		var messages []domain.ChatMessage
		for msg := range seq {
			messages = append(messages, msg)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messages)
	})

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

// MessageRow decodes an archived message value into a display row. Keys
// it cannot decode still show up, raw.
func MessageRow(key string, val []byte) InspectRow {
	row := InspectRow{
		Key:  key,
		Body: fmt.Sprintf("size: %d bytes", len(val)),
	}

	var msg struct {
		Channel string
		Seq     uint64
		Sender  string
		Body    string
		At      time.Time
	}
	if err := json.Unmarshal(val, &msg); err != nil {
		return row
	}

	row.Channel = msg.Channel
	row.Seq = msg.Seq
	row.Sender = msg.Sender
	row.Body = msg.Body
	row.At = msg.At.Format("15:04:05")
	return row
}
