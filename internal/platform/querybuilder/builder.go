package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// Condition renders one WHERE predicate using positional $n placeholders.
type Condition interface {
	render(q *query)
}

type query struct {
	buf  *bytebufferpool.ByteBuffer
	args []any
}

func (q *query) write(parts ...string) {
	for _, part := range parts {
		_, _ = q.buf.WriteString(part)
	}
}

func (q *query) bind(value any) {
	q.args = append(q.args, value)
	q.write("$", strconv.Itoa(len(q.args)))
}

func newQuery() *query {
	return &query{buf: bytebufferpool.Get()}
}

func (q *query) finish() (string, []any) {
	out := q.buf.String()
	bytebufferpool.Put(q.buf)
	return out, q.args
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) render(q *query) {
	q.write(c.column, " = ")
	q.bind(c.value)
}

type isNull string

func IsNull(column string) Condition {
	return isNull(column)
}

func (c isNull) render(q *query) {
	q.write(string(c), " IS NULL")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	q := newQuery()
	q.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for i, cond := range b.where {
		if i == 0 {
			q.write(" WHERE ")
		} else {
			q.write(" AND ")
		}
		cond.render(q)
	}
	if len(b.orderBy) > 0 {
		q.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		q.write(" LIMIT ", strconv.Itoa(b.limit))
	}

	sql, args := q.finish()
	return sql, args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert has %d values for %d columns", len(b.values), len(b.columns))
	}

	q := newQuery()
	q.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES (")
	for i, value := range b.values {
		if i > 0 {
			q.write(", ")
		}
		q.bind(value)
	}
	q.write(")")
	if b.suffix != "" {
		q.write(" ", b.suffix)
	}

	sql, args := q.finish()
	return sql, args, nil
}
