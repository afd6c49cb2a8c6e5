package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/filex"
	"github.com/dmitrijs2005/planningpoker/internal/netx"
)

// Export saves the CSV export of the current table into the data directory.
func (a *App) Export(ctx context.Context) error {
	var buf bytes.Buffer
	name, err := a.ctrl.ExportStories(ctx, &buf)
	if err != nil {
		return a.finish(err)
	}

	path := filepath.Join(a.dataDir, filepath.Base(name))
	if err := filex.WriteFileAtomic(path, buf.Bytes()); err != nil {
		a.logger.Warn(ctx, "saving export failed", "path", path, "error", err)
		return a.finish(err)
	}
	fmt.Fprintf(a.out, "Exported %d bytes to %s\n", buf.Len(), path)
	return nil
}

// Archive downloads the latest archived export of a table through its
// presigned link.
func (a *App) Archive(ctx context.Context, tableID int64) error {
	link, err := a.ctrl.ArchiveLink(ctx, tableID)
	if err != nil {
		return a.finish(err)
	}

	var buf bytes.Buffer
	if _, err := netx.DownloadFromPresignedURL(ctx, link.URL, &buf); err != nil {
		a.logger.Warn(ctx, "archive download failed", "table_id", tableID, "error", err)
		return a.finish(err)
	}

	path := filepath.Join(a.dataDir, fmt.Sprintf("archive-table-%d.csv", tableID))
	if err := filex.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return a.finish(err)
	}
	fmt.Fprintf(a.out, "Downloaded %d bytes to %s (link valid until %s)\n", buf.Len(), path, link.ExpiresAt.Format(time.RFC3339))
	return nil
}
