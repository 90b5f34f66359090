package seeder

import (
	"fmt"
	"sort"

	"github.com/Lumos-Labs-HQ/whseed/internal/types"
)

type DependencyGraph struct {
	tables map[string]*TableInfo
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]*TableInfo),
	}
}

// NewWarehouseGraph wires the star schema: facts depend on their dimensions.
func NewWarehouseGraph(t types.Tables) *DependencyGraph {
	g := NewDependencyGraph()
	g.AddTable(&TableInfo{Name: t.Customer, Generated: true})
	g.AddTable(&TableInfo{Name: t.Product, Generated: true})
	g.AddTable(&TableInfo{Name: t.Channel})
	g.AddTable(&TableInfo{Name: t.Date})
	g.AddTable(&TableInfo{Name: t.Order, Generated: true, Dependencies: []string{t.Customer, t.Date, t.Channel}})
	g.AddTable(&TableInfo{Name: t.OrderItem, Generated: true, Dependencies: []string{t.Order, t.Product}})
	return g
}

func (g *DependencyGraph) AddTable(table *TableInfo) {
	g.tables[table.Name] = table
}

func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		if table := g.tables[tableName]; table != nil {
			for _, dep := range table.Dependencies {
				if dep == tableName {
					continue
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, tableName := range names {
		if !visited[tableName] {
			if err := visit(tableName); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// TruncationOrder returns the generated tables, dependents first.
func (g *DependencyGraph) TruncationOrder() ([]string, error) {
	order, err := g.BuildInsertionOrder()
	if err != nil {
		return nil, err
	}
	var out []string
	for i := len(order) - 1; i >= 0; i-- {
		if t := g.tables[order[i]]; t != nil && t.Generated {
			out = append(out, order[i])
		}
	}
	return out, nil
}
