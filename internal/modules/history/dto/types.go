package dto

type Card struct {
	Front string
	Back  string
}

type RecordInput struct {
	SessionID    string
	Percent      int
	KnownCount   int
	UnknownCount int
	Total        int
	KnownCards   []Card
	UnknownCards []Card
}

type Entry struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Count int    `json:"count"`
}

type RecordOutput struct {
	Entries  []Entry
	NotePath string
}

type SummaryOutput struct {
	Verdict  string
	Markdown string
}
