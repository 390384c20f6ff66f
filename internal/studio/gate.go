package studio

import "genai-space-backend/internal/models"

// BaseTokenCost is charged on top of one token per image.
const BaseTokenCost = 5

func Cost(row models.DraftRow) int {
	return len(row.InspirationImages) + len(row.AreaImages) + BaseTokenCost
}

// CanSubmit reports whether the row has both image groups and the balance
// covers its cost.
func CanSubmit(row models.DraftRow, balance int) bool {
	return len(row.InspirationImages) > 0 && len(row.AreaImages) > 0 && balance >= Cost(row)
}
