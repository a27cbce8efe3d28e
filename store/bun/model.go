package bunstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/xraph/autoload/id"
	"github.com/xraph/autoload/store"
)

// recordModel is the table representation of a store.Record.
type recordModel struct {
	bun.BaseModel `bun:"table:autoload_records,alias:rec"`

	ID        string    `bun:"id,pk"`
	Domain    string    `bun:"domain,notnull"`
	Name      string    `bun:"name,notnull"`
	Event     string    `bun:"event,notnull"`
	Error     string    `bun:"error,nullzero"`
	ElapsedNS int64     `bun:"elapsed_ns,notnull,default:0"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func toModel(rec *store.Record) *recordModel {
	return &recordModel{
		ID:        rec.ID.String(),
		Domain:    rec.Domain,
		Name:      rec.Name,
		Event:     rec.Event,
		Error:     rec.Error,
		ElapsedNS: int64(rec.Elapsed),
		CreatedAt: rec.CreatedAt,
	}
}

func fromModel(m *recordModel) (*store.Record, error) {
	recID, err := id.ParseRecordID(m.ID)
	if err != nil {
		return nil, err
	}
	return &store.Record{
		ID:        recID,
		Domain:    m.Domain,
		Name:      m.Name,
		Event:     m.Event,
		Error:     m.Error,
		Elapsed:   time.Duration(m.ElapsedNS),
		CreatedAt: m.CreatedAt,
	}, nil
}
