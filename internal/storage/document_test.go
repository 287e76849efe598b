package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sandeepkv93/todotree/internal/model"
)

func TestDocumentRoundTrip(t *testing.T) {
	reg, store := sampleData(t)

	var buf bytes.Buffer
	if err := EncodeDocument(&buf, NewDocument(reg, store)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	doc, err := DecodeDocument(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	gotReg, gotStore, err := doc.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if got := gotReg.Names(model.KindTag); len(got) != 3 || got[2] != "BUG" {
		t.Fatalf("tags = %v", got)
	}
	if gotStore.Len() != 2 {
		t.Fatalf("groups = %d", gotStore.Len())
	}
	player := gotStore.Groups()[0]
	if player.Tag(gotReg).Name != "BUG" || player.Len() != 2 {
		t.Fatalf("player group = tag %q, %d todos", player.Tag(gotReg).Name, player.Len())
	}
	if player.TodoAt(0).EndAt == nil {
		t.Fatal("end time dropped")
	}
	for i, tag := range reg.Snapshot().Tags() {
		if got := gotReg.TagAt(i).Color; got != tag.Color {
			t.Fatalf("tag %d color = %+v, want %+v", i, got, tag.Color)
		}
	}
}

func TestRestoreRenumbersByPosition(t *testing.T) {
	input := `{
  "tags": [
    {"name": "TODO", "color": "#ffe530", "index": 7},
    {"name": "FIX ME", "color": "#ff333a", "index": 7},
    {"name": "BUG", "color": "#336699", "index": 0}
  ],
  "priorities": [{"name": "Default", "color": "#ffffff"}],
  "progresses": [{"name": "Default", "color": "#ffffff"}],
  "groups": [
    {"id": "g1", "title": "Orphan", "tag": 9, "todos": []}
  ]
}`
	doc, err := DecodeDocument(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	reg, store, err := doc.Restore()
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	for i := 0; i < reg.Len(model.KindTag); i++ {
		if reg.TagAt(i).Index != i {
			t.Fatalf("tag %d has index %d", i, reg.TagAt(i).Index)
		}
	}
	if got := store.Find("g1").Tag(reg).Name; got != "TODO" {
		t.Fatalf("out of range tag resolved to %q, want TODO", got)
	}
}

func TestDecodeDocumentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `{"tags":`},
		{name: "missing groups", input: `{"tags":[{"name":"a","color":"#ffffff"},{"name":"b","color":"#ffffff"}],"priorities":[{"name":"p","color":"#ffffff"}],"progresses":[{"name":"s","color":"#ffffff"}]}`},
		{name: "single tag", input: `{"tags":[{"name":"a","color":"#ffffff"}],"priorities":[{"name":"p","color":"#ffffff"}],"progresses":[{"name":"s","color":"#ffffff"}],"groups":[]}`},
		{name: "bad color", input: `{"tags":[{"name":"a","color":"white"},{"name":"b","color":"#ffffff"}],"priorities":[{"name":"p","color":"#ffffff"}],"progresses":[{"name":"s","color":"#ffffff"}],"groups":[]}`},
		{name: "bad date", input: `{"tags":[{"name":"a","color":"#ffffff"},{"name":"b","color":"#ffffff"}],"priorities":[{"name":"p","color":"#ffffff"}],"progresses":[{"name":"s","color":"#ffffff"}],"groups":[{"id":"g","title":"t","tag":0,"todos":[{"id":"x","title":"y","created_at":"yesterday"}]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeDocument(strings.NewReader(tc.input))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestRestoreRejectsDuplicateGroupIDs(t *testing.T) {
	doc := Document{
		Tags:       []LookupDoc{{Name: "a", Color: "#ffffff"}, {Name: "b", Color: "#ffffff"}},
		Priorities: []LookupDoc{{Name: "p", Color: "#ffffff"}},
		Progresses: []LookupDoc{{Name: "s", Color: "#ffffff"}},
		Groups:     []GroupDoc{{ID: "g", Title: "one"}, {ID: "g", Title: "two"}},
	}
	if _, _, err := doc.Restore(); !errors.Is(err, ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument, got %v", err)
	}
}
