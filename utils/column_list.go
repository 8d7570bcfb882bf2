package utils

import (
	"fmt"
	"reflect"
)

// ColumnList derives the list of column names of a db model struct from its
// "db" tags, so the select list and the struct cannot drift apart. Embedded
// structs are flattened, matching pgx.RowToStructByName.
func ColumnList[T any]() []string {
	var dbModel T
	return columnsOfStruct(reflect.TypeOf(dbModel))
}

func columnsOfStruct(structType reflect.Type) []string {
	if structType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("ColumnList: %s is not a struct", structType))
	}

	columns := make([]string, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Anonymous {
			columns = append(columns, columnsOfStruct(field.Type)...)
			continue
		}
		tag, ok := field.Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		columns = append(columns, tag)
	}
	return columns
}
