package grpc

import (
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
)

func developerToPB(d *models.Developer, withEmail bool) *pb.Developer {
	out := &pb.Developer{Id: d.ID, Name: d.Name, Vote: d.Vote}
	if withEmail {
		out.Email = d.Email
	}
	return out
}

func tableToPB(t *models.PokerTable) *pb.PokerTable {
	return &pb.PokerTable{Id: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, IsClosed: t.IsClosed}
}

func tablesToPB(ts []*models.PokerTable) []*pb.PokerTable {
	out := make([]*pb.PokerTable, 0, len(ts))
	for _, t := range ts {
		out = append(out, tableToPB(t))
	}
	return out
}

func storyToPB(s *models.UserStory) *pb.UserStory {
	return &pb.UserStory{
		Id:              s.ID,
		PokerTableId:    s.PokerTableID,
		Title:           s.Title,
		Description:     s.Description,
		EstimatedPoints: s.EstimatedPoints,
	}
}
