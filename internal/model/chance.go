package model

// Chance is a catalog entry for a randomly drawn card that applies an
// immediate score delta, positive or negative.
type Chance struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Description  string `json:"description" gorm:"type:text;not null"`
	ScoreToAward int    `json:"score_to_award" gorm:"default:0"`
}
