// Package query models the external collaborator boundary: the structured
// request a caller sends in (patient dosing history, drug parameters, and
// the computations requested) and the identifiers that thread through it.
// Grounded on original_source/src/tucuquery/querydata.h's QueryData /
// RequestData shape, kept deliberately thin -- per spec.md's scoping of the
// core computational pipeline, this package is a data-carrier, not a
// parser or a server.
package query

import (
	"time"

	"github.com/google/uuid"

	"github.com/sotalya/tducore/core"
)

// QueryData is everything a single request to the engine carries: who
// asked, when, in what language, the drug/patient data, and the list of
// computations to run against it.
type QueryData struct {
	QueryID   uuid.UUID
	ClientID  string
	QueryDate time.Time
	Language  string
	Drug      DrugData
	Requests  []RequestData
}

// NewQueryData constructs a QueryData with a freshly generated QueryID.
func NewQueryData(clientID, language string, drug DrugData, requests []RequestData) QueryData {
	return QueryData{
		QueryID:   uuid.New(),
		ClientID:  clientID,
		QueryDate: time.Now(),
		Language:  language,
		Drug:      drug,
		Requests:  requests,
	}
}

// DrugData pairs a drug identifier with the dosage history and parameter
// set the calculators need.
type DrugData struct {
	DrugID  string
	History core.DosageHistory
	Model   core.CompartmentModel
	Params  core.ParameterList
}

// ComputingTrait names one requested computation: a concentration
// prediction over a window, at a sample density, targeting a unit.
type ComputingTrait struct {
	Start         core.Instant
	End           core.Instant
	PointsPerHour float64
	ToUnit        core.Unit
}

// RequestData is one computation request within a QueryData, identified so
// the response can be correlated back to it.
type RequestData struct {
	RequestID string
	DrugID    string
	Trait     ComputingTrait
}

// NewRequestData constructs a RequestData with a freshly generated
// RequestID.
func NewRequestData(drugID string, trait ComputingTrait) RequestData {
	return RequestData{RequestID: uuid.NewString(), DrugID: drugID, Trait: trait}
}
