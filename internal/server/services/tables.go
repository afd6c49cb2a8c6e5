package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/dbx"
	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/dmitrijs2005/planningpoker/internal/server/repositories/repomanager"
)

// TableService owns the table lifecycle: create, join, vote, reset and close.
// Passing a nil Archiver disables S3 archiving of closed tables.
type TableService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	archiver    Archiver
	logger      logging.Logger
}

func NewTableService(db *sql.DB, m repomanager.RepositoryManager, a Archiver, l logging.Logger) *TableService {
	return &TableService{
		db:          db,
		repomanager: m,
		archiver:    a,
		logger:      l.With("module", "tables"),
	}
}

func (s *TableService) CreateTable(ctx context.Context) (*models.PokerTable, error) {
	t, err := s.repomanager.Tables(s.db).Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating table: %w", err)
	}
	s.logger.Info(ctx, "table created", "table_id", t.ID)
	return t, nil
}

func (s *TableService) GetTable(ctx context.Context, id int64) (*models.PokerTable, error) {
	return s.repomanager.Tables(s.db).Get(ctx, id)
}

func (s *TableService) ListActiveTables(ctx context.Context) ([]*models.PokerTable, error) {
	return s.repomanager.Tables(s.db).ListActive(ctx)
}

// ListMyClosedTables lists closed tables developerID took part in.
// Only the developer themself may ask.
func (s *TableService) ListMyClosedTables(ctx context.Context, callerID, developerID int64) ([]*models.PokerTable, error) {
	if callerID != developerID {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Tables(s.db).ListClosedByDeveloper(ctx, developerID)
}

// JoinTable seats the caller at tableID. Moving from another table (or from
// none) clears the vote; rejoining the same table keeps it.
func (s *TableService) JoinTable(ctx context.Context, callerID, tableID int64) (*models.Developer, *models.PokerTable, error) {
	var (
		dev   *models.Developer
		table *models.PokerTable
	)

	err := dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		t, err := s.repomanager.Tables(tx).Get(ctx, tableID)
		if err != nil {
			return err
		}
		if t.IsClosed {
			return common.ErrTableClosed
		}

		devs := s.repomanager.Developers(tx)
		d, err := devs.GetByID(ctx, callerID)
		if err != nil {
			return err
		}

		reset := d.PokerTableID == nil || *d.PokerTableID != tableID
		if err := devs.SetTable(ctx, callerID, tableID, reset); err != nil {
			return err
		}
		if reset {
			d.Vote = nil
		}
		d.PokerTableID = &t.ID

		dev, table = d, t
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info(ctx, "developer joined table", "developer_id", callerID, "table_id", tableID)
	return dev, table, nil
}

func (s *TableService) ListDevelopers(ctx context.Context, tableID int64) ([]*models.Developer, error) {
	if _, err := s.repomanager.Tables(s.db).Get(ctx, tableID); err != nil {
		return nil, err
	}
	return s.repomanager.Developers(s.db).ListByTable(ctx, tableID)
}

// seatedAtOpenTable loads the table and the caller, checking the table is
// open and the caller sits at it.
func (s *TableService) seatedAtOpenTable(ctx context.Context, db dbx.DBTX, callerID, tableID int64) (*models.Developer, error) {
	t, err := s.repomanager.Tables(db).Get(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if t.IsClosed {
		return nil, common.ErrTableClosed
	}

	d, err := s.repomanager.Developers(db).GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if d.PokerTableID == nil || *d.PokerTableID != tableID {
		return nil, common.ErrNotOnTable
	}
	return d, nil
}

// CastVote records value for developerID at tableID. Voting again overwrites.
func (s *TableService) CastVote(ctx context.Context, callerID, developerID, tableID int64, value int32) error {
	if callerID != developerID {
		return common.ErrorForbidden
	}
	if !common.IsValidVote(value) {
		return common.ErrInvalidVote
	}

	if _, err := s.seatedAtOpenTable(ctx, s.db, callerID, tableID); err != nil {
		return err
	}

	if err := s.repomanager.Developers(s.db).SetVote(ctx, developerID, &value); err != nil {
		return err
	}

	s.logger.Debug(ctx, "vote cast", "developer_id", developerID, "table_id", tableID)
	return nil
}

// HasVoted reports vote presence, so a zero vote counts.
func (s *TableService) HasVoted(ctx context.Context, developerID int64) (bool, error) {
	d, err := s.repomanager.Developers(s.db).GetByID(ctx, developerID)
	if err != nil {
		return false, err
	}
	return d.HasVoted(), nil
}

// ResetAllVotes clears every vote at tableID, starting a new round.
func (s *TableService) ResetAllVotes(ctx context.Context, callerID, tableID int64) error {
	if _, err := s.seatedAtOpenTable(ctx, s.db, callerID, tableID); err != nil {
		return err
	}

	n, err := s.repomanager.Developers(s.db).ResetVotes(ctx, tableID)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "votes reset", "table_id", tableID, "developers", n)
	return nil
}

// CloseTable snapshots every participant's vote, unseats everyone and marks
// the table closed, all in one transaction. The caller must sit at the table
// and every participant must have voted. Archiving happens after commit and
// its failures are only logged.
func (s *TableService) CloseTable(ctx context.Context, callerID, tableID int64) error {
	var participants int

	err := dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		t, err := s.repomanager.Tables(tx).GetForUpdate(ctx, tableID)
		if err != nil {
			return err
		}
		if t.IsClosed {
			return common.ErrTableClosed
		}

		devs, err := s.repomanager.Developers(tx).ListByTable(ctx, tableID)
		if err != nil {
			return err
		}

		seated := false
		for _, d := range devs {
			if d.ID == callerID {
				seated = true
			}
			if !d.HasVoted() {
				return common.ErrNotEveryoneVoted
			}
		}
		if !seated {
			return common.ErrNotOnTable
		}

		parts := s.repomanager.Participations(tx)
		for _, d := range devs {
			if err := parts.Create(ctx, &models.Participation{DeveloperID: d.ID, PokerTableID: tableID, Vote: d.Vote}); err != nil {
				return err
			}
		}

		if err := s.repomanager.Developers(tx).DetachAll(ctx, tableID); err != nil {
			return err
		}
		participants = len(devs)
		return s.repomanager.Tables(tx).MarkClosed(ctx, tableID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "table closed", "table_id", tableID, "participants", participants)

	if s.archiver != nil {
		if key, err := s.archive(ctx, tableID); err != nil {
			s.logger.Error(ctx, "archive failed", "table_id", tableID, "err", err)
		} else {
			s.logger.Info(ctx, "table archived", "table_id", tableID, "key", key)
		}
	}
	return nil
}

func (s *TableService) archive(ctx context.Context, tableID int64) (string, error) {
	stories, err := s.repomanager.Stories(s.db).ListByTable(ctx, tableID)
	if err != nil {
		return "", err
	}

	key := ArchiveKey(tableID)
	if err := s.archiver.Put(ctx, key, RenderStoriesCSV(stories), "text/csv"); err != nil {
		return "", err
	}
	if _, err := s.repomanager.Exports(s.db).Create(ctx, tableID, key); err != nil {
		return "", err
	}
	return key, nil
}

// GetExportURL presigns a download of the newest archived export of tableID.
func (s *TableService) GetExportURL(ctx context.Context, tableID int64) (url, key string, expiresAt time.Time, err error) {
	if s.archiver == nil {
		return "", "", time.Time{}, common.ErrArchiveDisabled
	}

	e, err := s.repomanager.Exports(s.db).Latest(ctx, tableID)
	if err != nil {
		return "", "", time.Time{}, err
	}

	expiresAt = time.Now().Add(ExportURLValidity)
	url, err = s.archiver.PresignGet(ctx, e.ObjectKey, ExportURLValidity)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("presign: %w", err)
	}
	return url, e.ObjectKey, expiresAt, nil
}
