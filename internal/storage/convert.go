package storage

import (
	"fmt"

	"github.com/sandeepkv93/todotree/internal/model"
)

func colorRow(c model.Color) (string, float64, *[3]float64) {
	return c.Hex(), c.A, &[3]float64{c.R, c.G, c.B}
}

func rowColor(hex string, alpha float64, rgb *[3]float64) (model.Color, error) {
	if rgb != nil {
		return model.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
	}
	c, err := model.ParseColor(hex)
	if err != nil {
		return model.Color{}, err
	}
	c.A = alpha
	return c, nil
}

func registryRows(reg *model.Registry) []LookupRow {
	snap := reg.Snapshot()
	out := make([]LookupRow, 0, snap.Len(model.KindTag)+snap.Len(model.KindPriority)+snap.Len(model.KindProgress))
	for _, kind := range []model.Kind{model.KindTag, model.KindPriority, model.KindProgress} {
		for i := 0; i < snap.Len(kind); i++ {
			e := snap.Lookup(kind, i)
			hex, alpha, rgb := colorRow(e.Color)
			out = append(out, LookupRow{Kind: kind.String(), Position: i, Name: e.Label, Color: hex, Alpha: alpha, RGB: rgb})
		}
	}
	return out
}

// registryFromRows expects rows ordered by position within each kind.
func registryFromRows(rows []LookupRow) (*model.Registry, error) {
	var (
		tags       []model.Tag
		priorities []model.Priority
		progresses []model.Progress
	)
	for _, row := range rows {
		c, err := rowColor(row.Color, row.Alpha, row.RGB)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", row.Kind, row.Name, err)
		}
		switch row.Kind {
		case model.KindTag.String():
			tags = append(tags, model.Tag{Name: row.Name, Color: c, Index: row.Position})
		case model.KindPriority.String():
			priorities = append(priorities, model.Priority{Name: row.Name, Color: c, Index: row.Position})
		case model.KindProgress.String():
			progresses = append(progresses, model.Progress{Status: row.Name, Color: c, Index: row.Position})
		default:
			return nil, fmt.Errorf("unknown lookup kind %q", row.Kind)
		}
	}
	return model.RestoreRegistry(tags, priorities, progresses), nil
}

func storeRows(store *model.Store) ([]GroupRow, []TodoRow) {
	groups := store.Groups()
	gr := make([]GroupRow, 0, len(groups))
	tr := make([]TodoRow, 0)
	for gi, g := range groups {
		gr = append(gr, GroupRow{
			ID:       g.ID,
			Position: gi,
			Title:    g.Title,
			Note:     g.Note,
			TagIndex: g.TagRef().Index,
			Asset:    string(g.Asset),
		})
		for ti, t := range g.Todos() {
			tr = append(tr, TodoRow{
				ID:            t.ID,
				GroupID:       g.ID,
				Position:      ti,
				Title:         t.Title,
				Description:   t.Description,
				ProgressIndex: t.ProgressRef().Index,
				PriorityIndex: t.PriorityRef().Index,
				CreatedAt:     t.CreatedAt(),
				EndAt:         t.EndAt,
			})
		}
	}
	return gr, tr
}

// storeFromRows expects groups ordered by position and todos ordered by
// position within their group.
func storeFromRows(groups []GroupRow, todos []TodoRow) *model.Store {
	byGroup := make(map[string][]*model.Todo, len(groups))
	for _, row := range todos {
		t := model.RestoreTodo(row.ID, row.Title, row.Description,
			model.Ref{Index: row.ProgressIndex}, model.Ref{Index: row.PriorityIndex},
			row.CreatedAt, row.EndAt)
		byGroup[row.GroupID] = append(byGroup[row.GroupID], t)
	}
	store := model.NewStore()
	for _, row := range groups {
		store.AddGroup(model.RestoreGroup(row.ID, row.Title, row.Note,
			model.Ref{Index: row.TagIndex}, model.AssetRef(row.Asset), byGroup[row.ID]))
	}
	return store
}
