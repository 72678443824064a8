package split

// SharesStrategy splits the total proportionally to integer share
// counts, e.g. 2:1:1 for someone covering a plus-one.
type SharesStrategy struct{}

// Method returns the split method identifier
func (s *SharesStrategy) Method() Method {
	return MethodByShares
}

// Validate checks if the inputs are valid for a by-shares split
func (s *SharesStrategy) Validate(req Request) error {
	if err := validateCommon(req); err != nil {
		return err
	}

	for _, p := range req.Participants {
		if p.Shares == nil {
			return ErrMissingShares
		}
		if *p.Shares <= 0 {
			return ErrInvalidShares
		}
	}
	return nil
}

// Calculate distributes the total in proportion to each participant's
// share count
func (s *SharesStrategy) Calculate(req Request) ([]Output, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	var totalShares int
	for _, p := range req.Participants {
		totalShares += *p.Shares
	}

	outputs := make([]Output, len(req.Participants))
	for i, p := range req.Participants {
		amount := req.Total * float64(*p.Shares) / float64(totalShares)
		outputs[i] = Output{
			FriendID:   p.FriendID,
			Amount:     amount,
			Percentage: percentOf(amount, req.Total),
		}
	}
	return outputs, nil
}
