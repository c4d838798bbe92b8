package resource

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cm-academy/cm-academy-api/internal/models"
)

type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeListed
	OutcomeDeleted
	OutcomeNotFound
	OutcomeValidationFault
	OutcomeOperationalFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeListed:
		return "listed"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeValidationFault:
		return "validation_fault"
	case OutcomeOperationalFault:
		return "operational_fault"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of one access-layer operation. ID is set for
// OutcomeCreated, Records for OutcomeListed, Err for the two fault outcomes.
type Result struct {
	Outcome Outcome
	ID      primitive.ObjectID
	Records []models.Record
	Err     error
}

func (r Result) Failed() bool {
	return r.Outcome == OutcomeValidationFault || r.Outcome == OutcomeOperationalFault
}
