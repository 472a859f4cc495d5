package validation

// Keywords holds the word lists the content rules match against. The lists
// are injected configuration rather than package constants so deployments can
// version them and tests can substitute their own.
type Keywords struct {
	Inappropriate     []string
	Technology        []string
	HomeInappropriate []string
}

// DefaultKeywords returns the stock word lists used when configuration does
// not override them.
func DefaultKeywords() Keywords {
	return Keywords{
		Inappropriate:     []string{"badword1", "badword2"},
		Technology:        []string{"computer", "laptop", "smartphone", "camera"},
		HomeInappropriate: []string{"forbiddenhome1", "forbiddenhome2"},
	}
}
