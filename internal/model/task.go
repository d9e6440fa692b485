package model

// Task is a catalog entry describing something a player can do on the
// board to earn points. ApplicableSquares lists the squares the task
// may be offered on; an empty list means the task is assigned nowhere.
type Task struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	Description       string `json:"description" gorm:"type:text;not null"`
	ApplicableSquares []int  `json:"applicable_squares" gorm:"serializer:json"`
	ScoreToAward      int    `json:"score_to_award" gorm:"default:10"`
}

// AppliesTo reports whether the task may be offered on the given square.
func (t *Task) AppliesTo(square int) bool {
	for _, s := range t.ApplicableSquares {
		if s == square {
			return true
		}
	}
	return false
}
