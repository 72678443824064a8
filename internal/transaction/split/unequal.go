package split

// UnequalStrategy lets every participant owe an explicit amount. The
// amounts must sum to the transaction total.
type UnequalStrategy struct{}

// Method returns the split method identifier
func (s *UnequalStrategy) Method() Method {
	return MethodUnequal
}

// Validate checks if the inputs are valid for an unequal split
func (s *UnequalStrategy) Validate(req Request) error {
	if err := validateCommon(req); err != nil {
		return err
	}

	var sum float64
	for _, p := range req.Participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		sum += *p.Amount
	}

	if !sumsToTotal(sum, req.Total) {
		return ErrAmountMismatch
	}
	return nil
}

// Calculate returns the explicit amounts as given
func (s *UnequalStrategy) Calculate(req Request) ([]Output, error) {
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	outputs := make([]Output, len(req.Participants))
	for i, p := range req.Participants {
		outputs[i] = Output{
			FriendID:   p.FriendID,
			Amount:     *p.Amount,
			Percentage: percentOf(*p.Amount, req.Total),
		}
	}
	return outputs, nil
}
