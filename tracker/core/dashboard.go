package core

import "context"

// GetDashboard returns the project cards visible to userID, or every project
// when userID is nil. Counts come from one aggregate query; open tasks are
// fetched afterwards only for the projects already selected.
func (s *Service) GetDashboard(ctx context.Context, userID *int64) ([]ProjectSummary, error) {
	if userID != nil && *userID <= 0 {
		return nil, ErrUserInvalidArgs
	}

	summaries, err := s.db.ProjectSummaries(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return []ProjectSummary{}, nil
	}

	ids := make([]int64, 0, len(summaries))
	index := make(map[int64]int, len(summaries))
	for i := range summaries {
		summaries[i].OpenTasks = []Task{}
		index[summaries[i].ProjectID] = i
		ids = append(ids, summaries[i].ProjectID)
	}

	open, err := s.db.OpenTasks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range open {
		if i, ok := index[t.ProjectID]; ok {
			summaries[i].OpenTasks = append(summaries[i].OpenTasks, t)
		}
	}

	return summaries, nil
}
