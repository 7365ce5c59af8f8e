package dto

type Card struct {
	Front string
	Back  string
}

type ImportInput struct {
	Raw    string
	Format string
	// Save stores the parsed deck as the current snapshot.
	Save bool
}

type DeckOutput struct {
	Format  string
	Cards   []Card
	Dropped int
	// Text is the deck in its one-card-per-line form, set for the saved deck.
	Text string
}
