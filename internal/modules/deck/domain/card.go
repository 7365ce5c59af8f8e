package domain

import "strings"

const SnapshotKey = "vocabCards"

// Card is one term/definition pair. Cards are values and never mutated
// after loading.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

func (c Card) Valid() bool {
	return strings.TrimSpace(c.Front) != "" && strings.TrimSpace(c.Back) != ""
}
