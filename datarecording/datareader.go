package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
)

// QueryParams encapsulates all query parameters
type QueryParams struct {
	// Where holds the WHERE clause without the "WHERE" keyword
	// Example: "Frame > ? AND Overrun = ?"
	Where string

	// Args holds the arguments for the placeholders in Where
	Args []any

	// Limit is the maximum number of records to return (pagination)
	// Set to 0 for no limit
	Limit int

	// Offset is the number of records to skip (pagination)
	Offset int

	// OrderBy specifies sorting, without the "ORDER BY" keywords
	// Example: "Frame DESC"
	OrderBy string
}

// DataReader can read recorded data back from a database
type DataReader interface {
	// MapTable establishes a mapping between a database table and a Go struct
	// type. This mapping is required before querying a table.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns a list of all tables that have been mapped.
	ListTables() []string

	// Query executes a query on a table and returns the results.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the reader
	Close() error
}

// SQLiteReader reads data from a SQLite database
type SQLiteReader struct {
	*sql.DB

	dbName  string
	typeMap map[string]reflect.Type
}

// NewSQLiteReader creates a SQLiteReader. Init must be called before use.
func NewSQLiteReader(path string) *SQLiteReader {
	return &SQLiteReader{
		dbName:  path,
		typeMap: make(map[string]reflect.Type),
	}
}

// NewReader creates a DataReader for the database at the given path.
func NewReader(path string) DataReader {
	r := NewSQLiteReader(path)
	r.Init()

	return r
}

// Init establishes a connection to the database.
func (r *SQLiteReader) Init() {
	db, err := sql.Open("sqlite3", r.dbName+".sqlite3")
	if err != nil {
		panic(err)
	}

	r.DB = db
}

// MapTable records the struct type that rows of the table unmarshal into.
func (r *SQLiteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

// ListTables returns the names of all the mapped tables.
func (r *SQLiteReader) ListTables() []string {
	tables := make([]string, 0, len(r.typeMap))
	for table := range r.typeMap {
		tables = append(tables, table)
	}

	return tables
}

// Query executes a query on a table and returns the matching entries plus the
// total count of rows that match the where clause, ignoring pagination.
func (r *SQLiteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) (results []any, totalCount int, err error) {
	structType, exists := r.typeMap[tableName]
	if !exists {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	totalCount, err = r.countRows(ctx, tableName, params)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.QueryContext(ctx, buildQuerySQL(tableName, params),
		params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		entry := reflect.New(structType).Elem()

		fields := make([]any, structType.NumField())
		for i := range fields {
			fields[i] = entry.Field(i).Addr().Interface()
		}

		if err := rows.Scan(fields...); err != nil {
			return nil, 0, err
		}

		results = append(results, entry.Interface())
	}

	return results, totalCount, rows.Err()
}

// Close closes the database.
func (r *SQLiteReader) Close() error {
	return r.DB.Close()
}

func (r *SQLiteReader) countRows(
	ctx context.Context,
	tableName string,
	params QueryParams,
) (int, error) {
	countSQL := "SELECT COUNT(*) FROM " + tableName
	if params.Where != "" {
		countSQL += " WHERE " + params.Where
	}

	var count int
	err := r.QueryRowContext(ctx, countSQL, params.Args...).Scan(&count)

	return count, err
}

func buildQuerySQL(tableName string, params QueryParams) string {
	querySQL := "SELECT * FROM " + tableName

	if params.Where != "" {
		querySQL += " WHERE " + params.Where
	}

	if params.OrderBy != "" {
		querySQL += " ORDER BY " + params.OrderBy
	}

	if params.Limit > 0 {
		querySQL += fmt.Sprintf(" LIMIT %d", params.Limit)

		if params.Offset > 0 {
			querySQL += fmt.Sprintf(" OFFSET %d", params.Offset)
		}
	}

	return querySQL
}
