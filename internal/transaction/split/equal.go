package split

// EqualStrategy divides the total evenly among all participants,
// payer included. The payer's share exists as a split of its own and is
// marked settled at creation time by the caller.
type EqualStrategy struct{}

// Method returns the split method identifier
func (s *EqualStrategy) Method() Method {
	return MethodEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(req Request) error {
	return validateCommon(req)
}

// Calculate divides the total evenly. Amounts are left unrounded so the
// shares sum back to the exact total; display rounding happens at the
// currency's minor-unit count.
func (s *EqualStrategy) Calculate(req Request) ([]Output, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	share := req.Total / float64(len(req.Participants))
	outputs := make([]Output, len(req.Participants))
	for i, p := range req.Participants {
		outputs[i] = Output{
			FriendID:   p.FriendID,
			Amount:     share,
			Percentage: percentOf(share, req.Total),
		}
	}
	return outputs, nil
}
