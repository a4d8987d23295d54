// Package formatter renders contacts for terminal output.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"contacts/internal/models"
)

// MaxCellWidth is the display width a cell is truncated to.
const MaxCellWidth = 32

// Labels shared with the web views.
const (
	NoName     = "No Name"
	NoContacts = "No contacts"
	StarOn     = "★"
	StarOff    = "☆"
)

var contactColumns = []string{"ID", "Name", "Twitter", "Fav", "Created"}

// ContactsTable renders contacts as an aligned pipe table. Widths are
// measured in terminal cells so CJK names line up.
func ContactsTable(contacts []models.Contact) string {
	if len(contacts) == 0 {
		return NoContacts + "\n"
	}

	rows := make([][]string, 0, len(contacts))

	for _, c := range contacts {
		fav := ""
		if c.IsFavorite() {
			fav = StarOn
		}

		rows = append(rows, []string{c.ID, DisplayName(c), c.Twitter, fav, createdDate(c.CreatedAt)})
	}

	return strings.Join(renderTable(contactColumns, rows), "\n") + "\n"
}

// ContactDetail renders a single contact.
func ContactDetail(c models.Contact) string {
	var sb strings.Builder

	star := StarOff
	if c.IsFavorite() {
		star = StarOn
	}

	sb.WriteString(DisplayName(c) + " " + star + "\n")

	if c.Twitter != "" {
		sb.WriteString("  twitter: " + c.Twitter + "\n")
	}

	if c.Avatar != "" {
		sb.WriteString("  avatar:  " + c.Avatar + "\n")
	}

	if c.Notes != "" {
		sb.WriteString("  notes:   " + c.Notes + "\n")
	}

	sb.WriteString("  id:      " + c.ID + "\n")

	if c.CreatedAt != "" {
		sb.WriteString("  created: " + c.CreatedAt + "\n")
	}

	return sb.String()
}

// DisplayName returns the full name or NoName.
func DisplayName(c models.Contact) string {
	if !c.HasName() {
		return NoName
	}

	return c.FullName()
}

func createdDate(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i > 0 {
		return ts[:i]
	}

	return ts
}

func renderTable(header []string, rows [][]string) []string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, header)

	for _, row := range rows {
		cells := make([]string, len(header))
		for i := range cells {
			if i < len(row) {
				cells[i] = runewidth.Truncate(strings.TrimSpace(row[i]), MaxCellWidth, "…")
			}
		}

		table = append(table, cells)
	}

	// Separator needs at least three dashes.
	colWidths := make([]int, len(header))
	for i := range colWidths {
		colWidths[i] = 3
	}

	for _, row := range table {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	result := make([]string, 0, len(table)+1)

	for i, row := range table {
		result = append(result, renderRow(row, colWidths))

		if i == 0 {
			sep := make([]string, len(colWidths))
			for j, w := range colWidths {
				sep[j] = strings.Repeat("-", w)
			}

			result = append(result, renderRow(sep, colWidths))
		}
	}

	return result
}

func renderRow(cells []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, cell := range cells {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cell, widths[j]))
		sb.WriteString(" |")
	}

	return sb.String()
}
