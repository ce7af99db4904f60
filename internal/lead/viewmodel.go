package lead

import "slices"

// Choice is one checkbox, radio or select entry on the page.
type Choice struct {
	Value   string
	Label   string
	Checked bool
}

// PageData backs the contact section of the landing page.
type PageData struct {
	Form           Form
	Status         Status
	Positions      []Choice
	Experience     []Choice
	Practices      []Choice
	Software       []Choice
	OthersLabel    string
	OthersSelected bool
	CanSubmit      bool
}

func newPageData(c *Catalog, st State, pending bool) PageData {
	f := st.Form
	data := PageData{
		Form:           f,
		Status:         st.Status,
		OthersLabel:    c.Others,
		OthersSelected: f.OthersSelected(c),
		CanSubmit:      f.CanSubmit(pending),
	}
	for _, p := range c.Positions {
		data.Positions = append(data.Positions, Choice{Value: p, Label: p, Checked: slices.Contains(f.Positions, p)})
	}
	for _, e := range c.Experience {
		data.Experience = append(data.Experience, Choice{Value: e.Value, Label: e.Label, Checked: e.Value == f.MinimumExperience})
	}
	for _, p := range c.PracticeOptions() {
		data.Practices = append(data.Practices, Choice{Value: p.Value, Label: p.Label, Checked: p.Value == f.PracticeType})
	}
	for _, s := range c.Software(f.PracticeType) {
		data.Software = append(data.Software, Choice{Value: s, Label: s, Checked: slices.Contains(f.SoftwareSystems, s)})
	}
	return data
}

// Options is the JSON view of the catalog for the current practice type.
type Options struct {
	Positions  []string `json:"positions"`
	Experience []Option `json:"experience"`
	Practices  []Option `json:"practices"`
	Software   []string `json:"software"`
	Others     string   `json:"others"`
}

// StateResponse is returned by the JSON endpoints.
type StateResponse struct {
	Form      Form    `json:"form"`
	Status    Status  `json:"status"`
	CanSubmit bool    `json:"canSubmit"`
	Options   Options `json:"options"`
}

func newStateResponse(c *Catalog, st State, pending bool) StateResponse {
	return StateResponse{
		Form:      st.Form,
		Status:    st.Status,
		CanSubmit: st.Form.CanSubmit(pending),
		Options: Options{
			Positions:  c.Positions,
			Experience: c.Experience,
			Practices:  c.PracticeOptions(),
			Software:   c.Software(st.Form.PracticeType),
			Others:     c.Others,
		},
	}
}
