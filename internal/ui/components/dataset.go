package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/internsim/internal/scenario"
	"github.com/abhisek/internsim/internal/ui/theme"
)

// DatasetTable renders scenario records as a table. Columns are the union
// of field names; a field declared with a null value shows as "null", a
// field the record does not declare stays blank.
type DatasetTable struct {
	Records []scenario.Record
	MaxRows int // 0 shows every record
	Width   int
}

func NewDatasetTable(records []scenario.Record, maxRows, width int) DatasetTable {
	return DatasetTable{Records: records, MaxRows: maxRows, Width: width}
}

func (d DatasetTable) View() string {
	if len(d.Records) == 0 {
		return theme.Hint.Render("(no records)")
	}

	cols := scenario.Columns(d.Records)
	shown := d.Records
	if d.MaxRows > 0 && len(shown) > d.MaxRows {
		shown = shown[:d.MaxRows]
	}

	rows := make([][]string, len(shown))
	nulls := make(map[[2]int]bool)
	for r, rec := range shown {
		row := make([]string, len(cols))
		for c, name := range cols {
			v, ok := rec.Get(name)
			switch {
			case !ok:
			case v.IsAbsent():
				row[c] = "null"
				nulls[[2]int{r, c}] = true
			default:
				row[c] = v.String()
			}
		}
		rows[r] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(cols...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			if nulls[[2]int{row, col}] {
				return theme.TableNull
			}
			return theme.TableCell
		})
	if d.Width > 0 {
		t = t.Width(d.Width)
	}

	out := t.Render()
	if hidden := len(d.Records) - len(shown); hidden > 0 {
		out += "\n" + theme.Hint.Render(fmt.Sprintf("... %d more records", hidden))
	}
	return out
}
