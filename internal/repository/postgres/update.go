package postgres

import (
	"fmt"
	"strings"
	"time"
)

// updateBuilder collects SET and WHERE clauses with numbered placeholders
type updateBuilder struct {
	sets  []string
	conds []string
	args  []interface{}
}

func (b *updateBuilder) set(column string, value interface{}) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) where(column string, value interface{}) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// describe applies the name/description part shared by all three entities
func (b *updateBuilder) describe(name, description *string, clear bool, modified time.Time) {
	if name != nil {
		b.set("name", *name)
	}
	if clear {
		b.set("description", nil)
	} else if description != nil {
		b.set("description", *description)
	}
	b.set("date_modified", modified)
}

func (b *updateBuilder) sql(table string) string {
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, strings.Join(b.sets, ", "), strings.Join(b.conds, " AND "))
}
