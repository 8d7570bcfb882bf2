package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type baseColumns struct {
	Id        string `db:"id"`
	CreatedAt string `db:"created_at"`
}

type testDbModel struct {
	baseColumns
	Name     string `db:"name"`
	Internal string `db:"-"`
	Untagged string
}

func TestColumnList(t *testing.T) {
	assert.Equal(t, []string{"id", "created_at", "name"}, ColumnList[testDbModel]())
}
