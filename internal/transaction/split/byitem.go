package split

// ItemStrategy resolves amounts from line items: each item's price is
// divided evenly among the participants assigned to it, and a
// participant's share is the sum over their items.
type ItemStrategy struct{}

// Method returns the split method identifier
func (s *ItemStrategy) Method() Method {
	return MethodByItem
}

// Validate checks if the inputs are valid for a by-item split
func (s *ItemStrategy) Validate(req Request) error {
	if err := validateCommon(req); err != nil {
		return err
	}
	if len(req.Items) == 0 {
		return ErrNoItems
	}

	participants := make(map[int64]bool, len(req.Participants))
	for _, p := range req.Participants {
		participants[p.FriendID] = true
	}

	var sum float64
	for _, item := range req.Items {
		if item.Amount < 0 {
			return ErrNegativeAmount
		}
		if len(item.Assignees) == 0 {
			return ErrUnknownAssignee
		}
		for _, assignee := range item.Assignees {
			if !participants[assignee] {
				return ErrUnknownAssignee
			}
		}
		sum += item.Amount
	}

	if !sumsToTotal(sum, req.Total) {
		return ErrItemsMismatch
	}
	return nil
}

// Calculate sums each participant's item shares
func (s *ItemStrategy) Calculate(req Request) ([]Output, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	totals := make(map[int64]float64, len(req.Participants))
	for _, item := range req.Items {
		perAssignee := item.Amount / float64(len(item.Assignees))
		for _, assignee := range item.Assignees {
			totals[assignee] += perAssignee
		}
	}

	outputs := make([]Output, len(req.Participants))
	for i, p := range req.Participants {
		amount := totals[p.FriendID]
		outputs[i] = Output{
			FriendID:   p.FriendID,
			Amount:     amount,
			Percentage: percentOf(amount, req.Total),
		}
	}
	return outputs, nil
}
