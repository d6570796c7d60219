package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/idilsaglam/errika/internal/model"
	"github.com/idilsaglam/errika/internal/validate"
)

// FormatVersion is written into every saved document.
const FormatVersion = 1

// MaxID bounds todo ids: every id is below it and next_id never exceeds it.
// It fits a 32-bit int so files stay portable.
const MaxID = 1<<31 - 1

// ErrCorrupt marks bytes that are not a todos document.
var ErrCorrupt = errors.New("todos file is corrupt")

// legacyTimeLayout is the zone-less ISO-8601 form older files carry.
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// Document is the decoded content of a todos file.
type Document struct {
	Items  []model.Item
	NextID int

	// Decode bookkeeping, never persisted.
	Skipped    int // records dropped for a blank text or an id out of range
	Renumbered int // records given a fresh id because theirs was taken
	Legacy     bool
}

type envelope struct {
	Version int      `json:"version"`
	NextID  int      `json:"next_id"`
	Todos   []record `json:"todos"`
}

// record is one todo on disk. Field order here is the order written.
type record struct {
	ID        int     `json:"id" validate:"gte=0,lt=2147483647"`
	Text      string  `json:"text" validate:"notblank"`
	Priority  *string `json:"priority"`
	Completed *bool   `json:"completed"`
	Created   *string `json:"created"`
}

// Encode renders the document as indented JSON with a trailing newline.
func Encode(items []model.Item, nextID int) ([]byte, error) {
	env := envelope{
		Version: FormatVersion,
		NextID:  nextID,
		Todos:   make([]record, 0, len(items)),
	}
	for _, it := range items {
		if it.ID >= env.NextID {
			env.NextID = it.ID + 1
		}
		prio := string(it.Priority)
		done := it.Completed
		created := it.Created.Format(time.RFC3339Nano)
		env.Todos = append(env.Todos, record{
			ID:        it.ID,
			Text:      it.Text,
			Priority:  &prio,
			Completed: &done,
			Created:   &created,
		})
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return append(b, '\n'), nil
}

// Decode parses a todos file. now supplies the creation time for records
// that lack a usable one. Anything that is not a todos document yields an
// error wrapping ErrCorrupt.
func Decode(b []byte, now time.Time) (Document, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Document{}, corrupt("json unmarshal: %v", err)
	}
	if dec.More() {
		return Document{}, corrupt("trailing data after document")
	}
	if err := schema.Validate(raw); err != nil {
		return Document{}, corrupt("schema: %s", strings.Join(schemaMessages(err), "; "))
	}

	var (
		recs []record
		doc  Document
	)
	if _, isArray := raw.([]any); isArray {
		doc.Legacy = true
		if err := json.Unmarshal(b, &recs); err != nil {
			return Document{}, corrupt("json unmarshal: %v", err)
		}
	} else {
		var env envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return Document{}, corrupt("json unmarshal: %v", err)
		}
		recs, doc.NextID = env.Todos, env.NextID
	}

	seen := make(map[int]bool, len(recs))
	var clash []int // indexes into doc.Items needing a new id
	for _, r := range recs {
		if err := validate.Struct(&r); err != nil {
			doc.Skipped++
			continue
		}
		it := model.Item{
			ID:       r.ID,
			Text:     strings.TrimSpace(r.Text),
			Priority: model.DefaultPriority,
			Created:  now,
		}
		if r.Priority != nil {
			it.Priority, _ = model.ParsePriority(*r.Priority)
		}
		if r.Completed != nil {
			it.Completed = *r.Completed
		}
		if r.Created != nil {
			if t, ok := parseTime(*r.Created); ok {
				it.Created = t
			}
		}
		if seen[it.ID] {
			clash = append(clash, len(doc.Items))
		} else {
			seen[it.ID] = true
		}
		if it.ID >= doc.NextID {
			doc.NextID = it.ID + 1
		}
		doc.Items = append(doc.Items, it)
	}
	for _, i := range clash {
		if doc.NextID >= MaxID {
			doc.Items[i].ID = -1
			doc.Skipped++
			continue
		}
		doc.Items[i].ID = doc.NextID
		doc.NextID++
		doc.Renumbered++
	}
	doc.Items = slices.DeleteFunc(doc.Items, func(it model.Item) bool { return it.ID < 0 })
	return doc, nil
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(legacyTimeLayout, s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func corrupt(format string, args ...any) error {
	return errors.Wrap(ErrCorrupt, fmt.Sprintf(format, args...))
}
