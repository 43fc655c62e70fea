package model

// LegacyFloorID is the synthetic floor id assigned when a layout document
// carries tables at the root instead of a floors collection.
const LegacyFloorID = "legacy"

// TableShape enumerates the drawable shapes for a table.
type TableShape string

const (
	ShapeRectangle TableShape = "rectangle"
	ShapeCircle    TableShape = "circle"
)

// Table is a layout-defined table: identity, geometry and capacity.
// Live operational state is kept separately in TableStatus.
type Table struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Shape    TableShape `json:"shape"`
	Capacity int        `json:"capacity"`
}

// Floor is a named grouping of tables with its own canvas size.
type Floor struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BackgroundImage string  `json:"backgroundImage,omitempty"`
	Tables          []Table `json:"tables"`
}

// Layout is the persisted floor/table geometry document. Legacy documents
// have no floors and place their tables directly on the root.
type Layout struct {
	Name   string  `json:"name,omitempty"`
	Floors []Floor `json:"floors,omitempty"`
	Tables []Table `json:"tables,omitempty"`
}

// IsLegacy reports whether the document predates floor support.
func (l *Layout) IsLegacy() bool {
	return len(l.Floors) == 0 && len(l.Tables) > 0
}

// EffectiveFloors returns the floors of the layout in document order,
// resolving a legacy document into a single synthetic floor.
func (l *Layout) EffectiveFloors() []Floor {
	if l.IsLegacy() {
		return []Floor{{
			ID:     LegacyFloorID,
			Name:   "Main Floor",
			Width:  800,
			Height: 600,
			Tables: l.Tables,
		}}
	}
	return l.Floors
}

// FindFloor looks up a floor by id, including the synthetic legacy floor.
func (l *Layout) FindFloor(floorID string) (Floor, bool) {
	for _, f := range l.EffectiveFloors() {
		if f.ID == floorID {
			return f, true
		}
	}
	return Floor{}, false
}

// FindTable looks up a table across all floors.
func (l *Layout) FindTable(tableID string) (Table, bool) {
	for _, f := range l.EffectiveFloors() {
		for _, t := range f.Tables {
			if t.ID == tableID {
				return t, true
			}
		}
	}
	return Table{}, false
}

// AppendTable adds a table to the named floor. For a legacy document the
// synthetic floor maps back onto the root table collection.
func (l *Layout) AppendTable(floorID string, t Table) bool {
	if l.IsLegacy() && floorID == LegacyFloorID {
		l.Tables = append(l.Tables, t)
		return true
	}
	for i := range l.Floors {
		if l.Floors[i].ID == floorID {
			l.Floors[i].Tables = append(l.Floors[i].Tables, t)
			return true
		}
	}
	return false
}

// RemoveTable deletes a table from the named floor and reports whether it
// was present.
func (l *Layout) RemoveTable(floorID, tableID string) bool {
	if l.IsLegacy() && floorID == LegacyFloorID {
		var ok bool
		l.Tables, ok = removeByID(l.Tables, tableID)
		return ok
	}
	for i := range l.Floors {
		if l.Floors[i].ID == floorID {
			var ok bool
			l.Floors[i].Tables, ok = removeByID(l.Floors[i].Tables, tableID)
			return ok
		}
	}
	return false
}

// Clone returns a deep copy of the layout so a mutation can be prepared and
// persisted without touching the authoritative in-memory document.
func (l *Layout) Clone() Layout {
	out := Layout{Name: l.Name}
	if l.Tables != nil {
		out.Tables = append([]Table(nil), l.Tables...)
	}
	for _, f := range l.Floors {
		fc := f
		fc.Tables = append([]Table(nil), f.Tables...)
		out.Floors = append(out.Floors, fc)
	}
	return out
}

func removeByID(tables []Table, tableID string) ([]Table, bool) {
	for i, t := range tables {
		if t.ID == tableID {
			return append(tables[:i], tables[i+1:]...), true
		}
	}
	return tables, false
}
