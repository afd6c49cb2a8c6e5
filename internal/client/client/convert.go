package client

import (
	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
)

func developerFromPB(d *pb.Developer) *models.Developer {
	if d == nil {
		return nil
	}
	return &models.Developer{ID: d.Id, Name: d.Name, Email: d.Email, Vote: d.Vote}
}

func tableFromPB(t *pb.PokerTable) *models.PokerTable {
	if t == nil {
		return nil
	}
	return &models.PokerTable{ID: t.Id, Name: t.Name, CreatedAt: t.CreatedAt, IsClosed: t.IsClosed}
}

func tablesFromPB(in []*pb.PokerTable) []models.PokerTable {
	out := make([]models.PokerTable, 0, len(in))
	for _, t := range in {
		if t != nil {
			out = append(out, *tableFromPB(t))
		}
	}
	return out
}

func storyFromPB(s *pb.UserStory) *models.UserStory {
	if s == nil {
		return nil
	}
	return &models.UserStory{
		ID:              s.Id,
		TableID:         s.PokerTableId,
		Title:           s.Title,
		Description:     s.Description,
		EstimatedPoints: s.EstimatedPoints,
	}
}
