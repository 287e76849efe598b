package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sandeepkv93/todotree/internal/model"
)

//go:embed schema/document.schema.json
var documentSchemaJSON []byte

const documentSchemaURL = "https://todotree.local/document.schema.json"

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

// Document is the portable JSON form of a registry and its store.
type Document struct {
	Tags       []LookupDoc `json:"tags"`
	Priorities []LookupDoc `json:"priorities"`
	Progresses []LookupDoc `json:"progresses"`
	Groups     []GroupDoc  `json:"groups"`
}

type LookupDoc struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
	Index int     `json:"index"`
	// RGB carries the exact channels; Color is the readable, rounded form.
	RGB []float64 `json:"rgb,omitempty"`
}

type GroupDoc struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Note  string    `json:"note,omitempty"`
	Tag   int       `json:"tag"`
	Asset string    `json:"asset,omitempty"`
	Todos []TodoDoc `json:"todos"`
}

type TodoDoc struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Progress    int        `json:"progress"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	EndAt       *time.Time `json:"end_at"`
}

// NewDocument captures the current registry and store.
func NewDocument(reg *model.Registry, store *model.Store) Document {
	doc := Document{
		Tags:       lookupDocs(reg, model.KindTag),
		Priorities: lookupDocs(reg, model.KindPriority),
		Progresses: lookupDocs(reg, model.KindProgress),
		Groups:     make([]GroupDoc, 0, store.Len()),
	}
	for _, g := range store.Groups() {
		gd := GroupDoc{
			ID:    g.ID,
			Title: g.Title,
			Note:  g.Note,
			Tag:   g.TagRef().Index,
			Asset: string(g.Asset),
			Todos: make([]TodoDoc, 0, g.Len()),
		}
		for _, t := range g.Todos() {
			gd.Todos = append(gd.Todos, TodoDoc{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Progress:    t.ProgressRef().Index,
				Priority:    t.PriorityRef().Index,
				CreatedAt:   t.CreatedAt().UTC(),
				EndAt:       utcPtr(t.EndAt),
			})
		}
		doc.Groups = append(doc.Groups, gd)
	}
	return doc
}

func lookupDocs(reg *model.Registry, kind model.Kind) []LookupDoc {
	n := reg.Len(kind)
	out := make([]LookupDoc, 0, n)
	for i := 0; i < n; i++ {
		e := reg.Lookup(kind, i)
		hex, alpha, rgb := colorRow(e.Color)
		out = append(out, LookupDoc{Name: e.Label, Color: hex, Alpha: alpha, Index: i, RGB: rgb[:]})
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// Restore rebuilds the registry and store. Stored indices are ignored in
// favour of list position, and references are synced before returning.
func (d Document) Restore() (*model.Registry, *model.Store, error) {
	rows := make([]LookupRow, 0, len(d.Tags)+len(d.Priorities)+len(d.Progresses))
	add := func(kind model.Kind, docs []LookupDoc) {
		for i, l := range docs {
			row := LookupRow{Kind: kind.String(), Position: i, Name: l.Name, Color: l.Color, Alpha: l.Alpha}
			if len(l.RGB) == 3 {
				row.RGB = &[3]float64{l.RGB[0], l.RGB[1], l.RGB[2]}
			}
			rows = append(rows, row)
		}
	}
	add(model.KindTag, d.Tags)
	add(model.KindPriority, d.Priorities)
	add(model.KindProgress, d.Progresses)
	reg, err := registryFromRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	groups := make([]GroupRow, 0, len(d.Groups))
	todos := make([]TodoRow, 0)
	seen := make(map[string]struct{})
	for gi, g := range d.Groups {
		if _, dup := seen[g.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate group id %q", ErrInvalidDocument, g.ID)
		}
		seen[g.ID] = struct{}{}
		groups = append(groups, GroupRow{ID: g.ID, Position: gi, Title: g.Title, Note: g.Note, TagIndex: g.Tag, Asset: g.Asset})
		for ti, t := range g.Todos {
			todos = append(todos, TodoRow{
				ID:            t.ID,
				GroupID:       g.ID,
				Position:      ti,
				Title:         t.Title,
				Description:   t.Description,
				ProgressIndex: t.Progress,
				PriorityIndex: t.Priority,
				CreatedAt:     t.CreatedAt,
				EndAt:         t.EndAt,
			})
		}
	}
	store := storeFromRows(groups, todos)
	store.Sync(reg)
	return reg, store, nil
}

// EncodeDocument writes doc as indented JSON.
func EncodeDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// DecodeDocument reads a document and validates it against the embedded
// schema. Validation failures wrap ErrInvalidDocument.
func DecodeDocument(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	schema, err := compiledDocumentSchema()
	if err != nil {
		return Document{}, err
	}
	if err := schema.Validate(obj); err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidDocument, schemaMessage(err))
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(documentSchemaURL, bytes.NewReader(documentSchemaJSON)); err != nil {
			documentSchemaErr = fmt.Errorf("load document schema: %w", err)
			return
		}
		documentSchema, documentSchemaErr = compiler.Compile(documentSchemaURL)
		if documentSchemaErr != nil {
			documentSchemaErr = fmt.Errorf("compile document schema: %w", documentSchemaErr)
		}
	})
	return documentSchema, documentSchemaErr
}

func schemaMessage(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var msgs []string
	collectSchemaMessages(ve, &msgs)
	return strings.Join(msgs, "; ")
}

func collectSchemaMessages(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaMessages(cause, out)
	}
}
