package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseSchemas(t *testing.T, dests ...interface{}) []*schema.Schema {
	t.Helper()
	cache := &sync.Map{}
	out := make([]*schema.Schema, 0, len(dests))
	for _, dest := range dests {
		s, err := schema.Parse(dest, cache, schema.NamingStrategy{})
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

// ticketConstraints collects every foreign key AutoMigrate would put on the
// given tickets column, whichever model declares it.
func ticketConstraints(schemas []*schema.Schema, column string) []*schema.Constraint {
	var found []*schema.Constraint
	for _, s := range schemas {
		for _, rel := range s.Relationships.Relations {
			c := rel.ParseConstraint()
			if c == nil || c.Schema == nil || c.Schema.Table != "tickets" {
				continue
			}
			if len(c.ForeignKeys) == 1 && c.ForeignKeys[0].DBName == column {
				found = append(found, c)
			}
		}
	}
	return found
}

func TestTicket_BelongsToFlightAndOrder(t *testing.T) {
	schemas := parseSchemas(t, &Ticket{})
	ticket := schemas[0]

	for _, name := range []string{"Flight", "Order"} {
		rel, ok := ticket.Relationships.Relations[name]
		require.True(t, ok, name)
		assert.Equal(t, schema.BelongsTo, rel.Type, name)
	}
}

func TestTicket_SingleCascadingForeignKeyPerParent(t *testing.T) {
	schemas := parseSchemas(t, &Flight{}, &Order{}, &Ticket{})

	tests := []struct {
		column string
		parent string
	}{
		{column: "flight_id", parent: "flights"},
		{column: "order_id", parent: "orders"},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			found := ticketConstraints(schemas, tt.column)
			require.Len(t, found, 1)
			assert.Equal(t, tt.parent, found[0].ReferenceSchema.Table)
			assert.Equal(t, "CASCADE", found[0].OnDelete)
		})
	}
}
