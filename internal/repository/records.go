package repository

import (
	"fmt"
	"time"

	"github.com/Adilzhan2201/Friendship_Manager/pkg/apperr"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
)

// Typed accessors over raw graph records. Missing or null values decode to
// zero values; the queries in the registry alias every column they return.

func recordString(rec *db.Record, key string) string {
	if rec == nil {
		return ""
	}
	value, ok := rec.Get(key)
	if !ok || value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

func recordBool(rec *db.Record, key string) bool {
	if rec == nil {
		return false
	}
	value, ok := rec.Get(key)
	if !ok || value == nil {
		return false
	}
	b, _ := value.(bool)
	return b
}

func recordInt(rec *db.Record, key string) int64 {
	if rec == nil {
		return 0
	}
	value, ok := rec.Get(key)
	if !ok || value == nil {
		return 0
	}
	n, _ := value.(int64)
	return n
}

func recordTime(rec *db.Record, key string) time.Time {
	if rec == nil {
		return time.Time{}
	}
	value, ok := rec.Get(key)
	if !ok || value == nil {
		return time.Time{}
	}
	t, _ := value.(time.Time)
	return t
}

func recordTimePtr(rec *db.Record, key string) *time.Time {
	t := recordTime(rec, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

// infraErr tags a backend failure so handlers can distinguish it from
// business-rule violations.
func infraErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, apperr.ErrInfrastructure)
}
