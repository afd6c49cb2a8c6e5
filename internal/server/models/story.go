package models

// UserStory is a unit of work estimated at a table.
type UserStory struct {
	ID              int64
	PokerTableID    int64
	Title           string
	Description     string
	EstimatedPoints *int32
}

// StoryPatch is a partial update. Nil fields stay unchanged;
// ClearEstimate resets EstimatedPoints to null.
type StoryPatch struct {
	Title           *string
	Description     *string
	EstimatedPoints *int32
	ClearEstimate   bool
}

// Apply returns a copy of s with the patch applied.
func (p StoryPatch) Apply(s UserStory) UserStory {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.ClearEstimate {
		s.EstimatedPoints = nil
	} else if p.EstimatedPoints != nil {
		v := *p.EstimatedPoints
		s.EstimatedPoints = &v
	}
	return s
}
