package pipeline

import (
	"time"

	"doc-analytics-be/internal/constant"

	"github.com/google/uuid"
)

// Stage is where a run currently is in the FETCH -> REDUCE -> ANALYZE ->
// LABEL -> PERSIST -> DONE machine. FAILED is reachable from any stage.
type Stage string

const (
	StageFetch   Stage = "FETCH"
	StageReduce  Stage = "REDUCE"
	StageAnalyze Stage = "ANALYZE"
	StageLabel   Stage = "LABEL"
	StagePersist Stage = "PERSIST"
	StageDone    Stage = "DONE"
	StageFailed  Stage = "FAILED"
)

// Run is the ephemeral record of one pipeline execution. It is owned by a
// single goroutine for the duration of the request and never shared.
type Run struct {
	Id        uuid.UUID
	UserId    string
	Action    constant.Action
	StartedAt time.Time
	Stage     Stage
	StageErr  error
}

func NewRun(userId string, action constant.Action) *Run {
	return &Run{
		Id:        uuid.New(),
		UserId:    userId,
		Action:    action,
		StartedAt: time.Now(),
		Stage:     StageFetch,
	}
}

func (r *Run) advance(stage Stage) {
	r.Stage = stage
}

func (r *Run) fail(err error) {
	r.Stage = StageFailed
	r.StageErr = err
}

// Document is one fetched document with its chunk vectors already collapsed
// to a single mean vector and its chunk texts concatenated.
type Document struct {
	DocumentId string
	Vector     []float32
	Text       string
}
