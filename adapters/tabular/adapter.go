package tabular

import (
	"strconv"
	"strings"

	"puckval/domain/core"
	"puckval/domain/player"
)

// Column aliases seen across stat exports. Sources disagree on header
// names for the same concept; everything funnels into the canonical
// schema here. Matching is case-insensitive.
var (
	idAliases       = []string{"id", "playerid", "player_id"}
	nameAliases     = []string{"player", "name", "player_name", "fullname", "skaterfullname"}
	positionAliases = []string{"pos", "position", "positioncode"}
	usageAliases    = []string{"toi", "icetime", "toi_per_game", "timeonicepergame"}
	rosteredAliases = []string{"rostered", "is_rostered", "isrostered"}
)

// columnMap locates the canonical columns in a header row. Index -1
// means the column is absent.
type columnMap struct {
	id       int
	name     int
	position int
	usage    int
	rostered int
	// categories maps remaining header names to their column index
	categories map[string]int
}

func mapColumns(header []string) columnMap {
	cm := columnMap{id: -1, name: -1, position: -1, usage: -1, rostered: -1, categories: make(map[string]int)}

	match := func(cell string, aliases []string) bool {
		lower := strings.ToLower(strings.TrimSpace(cell))
		for _, a := range aliases {
			if lower == a {
				return true
			}
		}
		return false
	}

	for i, cell := range header {
		switch {
		case cm.id == -1 && match(cell, idAliases):
			cm.id = i
		case cm.name == -1 && match(cell, nameAliases):
			cm.name = i
		case cm.position == -1 && match(cell, positionAliases):
			cm.position = i
		case cm.usage == -1 && match(cell, usageAliases):
			cm.usage = i
		case cm.rostered == -1 && match(cell, rosteredAliases):
			cm.rostered = i
		default:
			key := strings.TrimSpace(cell)
			if key != "" {
				cm.categories[key] = i
			}
		}
	}
	return cm
}

// Adapt normalizes raw rows (header first) into a canonical StatTable.
// This is a pure transform: unparseable or empty stat cells are omitted
// from the row's mapping, never silently zeroed; the standardization
// configuration decides later how absence is treated.
//
// Fails with a schema error when neither an identifier nor a name
// column is present. In name-only datasets a deterministic identifier
// is synthesized from the name plus a duplicate ordinal.
func Adapt(rows [][]string) (*player.StatTable, error) {
	if len(rows) == 0 {
		return player.NewStatTable(nil), nil
	}

	cm := mapColumns(rows[0])
	if cm.id == -1 && cm.name == -1 {
		return nil, core.NewSchemaError("player identifier or name column")
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]player.Record, 0, len(rows)-1)
	seenIDs := make(map[core.PlayerID]bool, len(rows)-1)
	nameCounts := make(map[string]int)

	for _, row := range rows[1:] {
		name := cell(row, cm.name)

		var id core.PlayerID
		if raw := cell(row, cm.id); raw != "" {
			id = core.PlayerID(raw)
		} else {
			if name == "" {
				// Nothing to identify this row by; skip rather than invent.
				continue
			}
			nameCounts[name]++
			if nameCounts[name] == 1 {
				id = core.PlayerID(name)
			} else {
				id = core.PlayerID(name + "#" + strconv.Itoa(nameCounts[name]))
			}
		}
		if seenIDs[id] {
			return nil, core.NewSchemaError("duplicate identifier " + id.String())
		}
		seenIDs[id] = true

		rec := player.Record{
			ID:       id,
			Name:     name,
			Position: parsePosition(cell(row, cm.position)),
			Stats:    make(map[string]float64, len(cm.categories)),
		}

		if v, ok := parseNumber(cell(row, cm.usage)); ok {
			rec.Usage = v
		}
		if cm.rostered >= 0 {
			if b, ok := parseBool(cell(row, cm.rostered)); ok {
				rec.Rostered = &b
			}
		}
		for key, idx := range cm.categories {
			if v, ok := parseNumber(cell(row, idx)); ok {
				rec.Stats[key] = v
			}
		}
		records = append(records, rec)
	}

	return player.NewStatTable(records), nil
}

func parsePosition(raw string) player.Position {
	switch strings.ToUpper(raw) {
	case "F", "C", "LW", "RW":
		return player.PositionForward
	case "D":
		return player.PositionDefense
	default:
		return player.PositionNone
	}
}

func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "t", "1", "yes", "y":
		return true, true
	case "false", "f", "0", "no", "n":
		return false, true
	default:
		return false, false
	}
}
