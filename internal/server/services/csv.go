package services

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

const csvHeader = "Summary,Description,Issue Type,Story point estimate\n"

// ExportFilename is the download name of a table's story export.
func ExportFilename(tableID int64) string {
	return fmt.Sprintf("poker-planning-export-%d.csv", tableID)
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// RenderStoriesCSV renders stories in an issue-tracker import layout.
// Text columns are always quoted; a missing estimate leaves the last column empty.
func RenderStoriesCSV(stories []*models.UserStory) []byte {
	var buf bytes.Buffer
	buf.WriteString(csvHeader)

	for _, s := range stories {
		buf.WriteString(quoteCSV(s.Title))
		buf.WriteByte(',')
		buf.WriteString(quoteCSV(s.Description))
		buf.WriteByte(',')
		buf.WriteString(quoteCSV("Story"))
		buf.WriteByte(',')
		if s.EstimatedPoints != nil {
			buf.WriteString(strconv.FormatInt(int64(*s.EstimatedPoints), 10))
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
