package studio_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/studio"
)

func rowWith(insp, area int) models.DraftRow {
	return models.DraftRow{
		ID:                1,
		InspirationImages: make([]models.UploadedImage, insp),
		AreaImages:        make([]models.UploadedImage, area),
	}
}

func TestCost(t *testing.T) {
	assert.Equal(t, 5, studio.Cost(rowWith(0, 0)))
	assert.Equal(t, 7, studio.Cost(rowWith(1, 1)))
	assert.Equal(t, 10, studio.Cost(rowWith(3, 2)))
}

func TestCanSubmit(t *testing.T) {
	for insp := 0; insp <= 3; insp++ {
		for area := 0; area <= 3; area++ {
			for balance := 0; balance <= 12; balance++ {
				row := rowWith(insp, area)
				want := insp > 0 && area > 0 && balance >= insp+area+studio.BaseTokenCost
				t.Run(fmt.Sprintf("insp=%d,area=%d,balance=%d", insp, area, balance), func(t *testing.T) {
					assert.Equal(t, want, studio.CanSubmit(row, balance))
				})
			}
		}
	}
}
