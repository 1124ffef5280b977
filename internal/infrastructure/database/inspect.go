package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ColumnReport describes one column as the database reports it
type ColumnReport struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Nullable   bool   `yaml:"nullable"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
}

// TableReport is the state of one table
type TableReport struct {
	Name    string         `yaml:"name"`
	Exists  bool           `yaml:"exists"`
	Rows    int64          `yaml:"rows"`
	Columns []ColumnReport `yaml:"columns,omitempty"`
	Indexes []string       `yaml:"indexes,omitempty"`
}

// InspectTables reports existence, row count, columns and indexes of the
// service tables. Missing tables are reported, not treated as errors.
func InspectTables(ctx context.Context, db *gorm.DB, tables Tables) ([]TableReport, error) {
	tables = tables.withDefaults()

	reports := make([]TableReport, 0, 2)
	for _, name := range []string{tables.Payments, tables.PaymentLogs} {
		report, err := inspectTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func inspectTable(ctx context.Context, db *gorm.DB, name string) (TableReport, error) {
	report := TableReport{Name: name}

	migrator := db.WithContext(ctx).Migrator()
	if !migrator.HasTable(name) {
		return report, nil
	}
	report.Exists = true

	if err := db.WithContext(ctx).Table(name).Count(&report.Rows).Error; err != nil {
		return report, fmt.Errorf("failed to count rows of %s: %w", name, err)
	}

	columns, err := migrator.ColumnTypes(name)
	if err != nil {
		return report, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}
	for _, col := range columns {
		nullable, _ := col.Nullable()
		primary, _ := col.PrimaryKey()
		report.Columns = append(report.Columns, ColumnReport{
			Name:       col.Name(),
			Type:       col.DatabaseTypeName(),
			Nullable:   nullable,
			PrimaryKey: primary,
		})
	}

	// not every dialect can list indexes
	indexes, err := migrator.GetIndexes(name)
	if err != nil {
		return report, nil
	}
	for _, idx := range indexes {
		report.Indexes = append(report.Indexes, idx.Name())
	}

	return report, nil
}
