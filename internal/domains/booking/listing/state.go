package listing

import "hotel/internal/domains/booking/model"

// State is the search term and page a caller is looking at. It is passed by value;
// every transition returns a new State.
type State struct {
	Term string
	Page int
}

func NewState(term string, page int) State {
	return State{Term: term, Page: max(page, 1)}
}

// WithTerm changes the search term and goes back to the first page.
func (s State) WithTerm(term string) State {
	return State{Term: term, Page: 1}
}

// GoTo moves to page when it exists. Out of range requests leave the state unchanged.
func (s State) GoTo(page, totalPages int) State {
	if page < 1 || page > totalPages {
		return s
	}

	s.Page = page

	return s
}

// Apply runs the search, then navigates from the first page of the results to s.Page.
// A page the results do not have leaves the view on the first page.
func (s State) Apply(items []model.ListItem, pageSize int) Page {
	results := Search(items, s.Term)
	current := s.WithTerm(s.Term).GoTo(s.Page, TotalPages(len(results), pageSize))

	return Paginate(results, pageSize, current.Page)
}
