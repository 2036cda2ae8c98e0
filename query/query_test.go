package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sotalya/tducore/core"
)

func TestNewQueryData_GeneratesUniqueIDs(t *testing.T) {
	drug := DrugData{DrugID: "drug-a"}
	a := NewQueryData("client-1", "en", drug, nil)
	b := NewQueryData("client-1", "en", drug, nil)
	assert.NotEqual(t, a.QueryID, b.QueryID)
}

func TestNewRequestData_CarriesTrait(t *testing.T) {
	trait := ComputingTrait{
		Start:         core.NewInstant(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		PointsPerHour: 1,
		ToUnit:        "mg",
	}
	req := NewRequestData("drug-a", trait)
	assert.Equal(t, "drug-a", req.DrugID)
	assert.Equal(t, trait.ToUnit, req.Trait.ToUnit)
	assert.NotEmpty(t, req.RequestID)
}
