package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"icando-go/app/models"
)

// Neo4jStore keeps missions as (:Mission) nodes linked by HAS_PARENT
// relationships. Sibling order is kept in the position property.
type Neo4jStore struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jStore creates a new instance of Neo4jStore.
func NewNeo4jStore(driver neo4j.DriverWithContext) *Neo4jStore {
	return &Neo4jStore{driver: driver}
}

// Load retrieves all missions from the database.
func (s *Neo4jStore) Load(ctx context.Context) (*models.Mission, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (m:Mission) "+
				"OPTIONAL MATCH (m)-[:HAS_PARENT]->(p:Mission) "+
				"RETURN m.id AS id, p.id AS parent_id, m.position AS position, m.title AS title, "+
				"m.description AS description, m.completed AS completed, m.expanded AS expanded, "+
				"m.kind AS kind, m.has_children AS has_children",
			nil,
		)
		if err != nil {
			return nil, err
		}

		var rows []row
		for res.Next(ctx) {
			record := res.Record()
			rows = append(rows, row{
				ID:          stringValue(record.Values[0]),
				ParentID:    stringValue(record.Values[1]),
				Position:    intValue(record.Values[2]),
				Title:       stringValue(record.Values[3]),
				Description: stringValue(record.Values[4]),
				Completed:   boolValue(record.Values[5]),
				Expanded:    boolValue(record.Values[6]),
				Kind:        stringValue(record.Values[7]),
				HasChildren: boolValue(record.Values[8]),
			})
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("read missions: %w", err)
	}

	rows, _ := result.([]row)
	return assemble(rows)
}

// Save replaces the stored graph with root and its descendants.
func (s *Neo4jStore) Save(ctx context.Context, root *models.Mission) error {
	var nodes, links []any
	for _, r := range flatten(root) {
		nodes = append(nodes, map[string]any{
			"id":           r.ID,
			"position":     r.Position,
			"title":        r.Title,
			"description":  r.Description,
			"completed":    r.Completed,
			"expanded":     r.Expanded,
			"kind":         r.Kind,
			"has_children": r.HasChildren,
		})
		if r.ParentID != "" {
			links = append(links, map[string]any{"child": r.ID, "parent": r.ParentID})
		}
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		// First, drop the previous tree
		if _, err := tx.Run(ctx, "MATCH (m:Mission) DETACH DELETE m", nil); err != nil {
			return nil, err
		}

		_, err := tx.Run(ctx,
			"UNWIND $nodes AS n "+
				"CREATE (:Mission {id: n.id, position: n.position, title: n.title, description: n.description, "+
				"completed: n.completed, expanded: n.expanded, kind: n.kind, has_children: n.has_children})",
			map[string]any{"nodes": nodes},
		)
		if err != nil {
			return nil, err
		}

		_, err = tx.Run(ctx,
			"UNWIND $links AS l "+
				"MATCH (child:Mission {id: l.child}), (parent:Mission {id: l.parent}) "+
				"CREATE (child)-[:HAS_PARENT]->(parent)",
			map[string]any{"links": links},
		)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("write missions: %w", err)
	}
	return nil
}

// Close closes the underlying driver.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}

func intValue(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	}
	return 0
}
