package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint", Detail: "Key (slug)=(pepes_vans) already exists."}

	tests := []struct {
		name string
		err  error
		want Fault
	}{
		{name: "nil", err: nil, want: FaultNone},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: FaultNotFound},
		{name: "wrapped record not found", err: fmt.Errorf("find: %w", gorm.ErrRecordNotFound), want: FaultNotFound},
		{name: "translated duplicate", err: gorm.ErrDuplicatedKey, want: FaultDuplicateKey},
		{name: "postgres unique violation", err: unique, want: FaultDuplicateKey},
		{name: "wrapped postgres unique violation", err: fmt.Errorf("save: %w", unique), want: FaultDuplicateKey},
		{name: "other postgres error", err: &pgconn.PgError{Code: "23503"}, want: FaultOther},
		{name: "plain error", err: errors.New("connection reset"), want: FaultOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "Key (slug)=(x) already exists.", Detail(&pgconn.PgError{Code: "23505", Detail: "Key (slug)=(x) already exists."}))
	assert.Equal(t, "boom", Detail(&pgconn.PgError{Message: "boom"}))
	assert.Equal(t, "duplicated key not allowed", Detail(gorm.ErrDuplicatedKey))
	assert.Equal(t, "", Detail(nil))
}

func TestFaultString(t *testing.T) {
	assert.Equal(t, "duplicate_key", FaultDuplicateKey.String())
	assert.Equal(t, "other", FaultOther.String())
}
