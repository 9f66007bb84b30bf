// Package tonbantest provides a small classification dataset for tests.
package tonbantest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OpenNSW/tonban/internal/tonban/model"
)

// Codes present in both entry tables of the fixture.
const (
	CodeHorse   = "0101.21-000"
	CodeCattle  = "0102.21-000"
	CodeBeef    = "0201.10-000"
	CodePotato  = "0701.90-000"
	CodeMissing = "9999.99-999"
)

var hierarchyDDL = []string{
	"CREATE TABLE 部番 (部番 TEXT PRIMARY KEY, 部タイトル TEXT, 部注 TEXT)",
	"CREATE TABLE 類番 (類番 TEXT PRIMARY KEY, 部番 TEXT, 類タイトル TEXT, 類注 TEXT)",
	"CREATE TABLE 項番 (項番 TEXT PRIMARY KEY, 類番 TEXT, 項タイトル TEXT)",
	"CREATE TABLE 号番 (号番 TEXT PRIMARY KEY, 項番 TEXT, 号タイトル TEXT)",
}

var hierarchyRows = []struct {
	sql  string
	args []any
}{
	{"INSERT INTO 部番 VALUES (?, ?, ?)", []any{"01", "動物（生きているものに限る。）及び動物性生産品", "この部において属又は種の動物には、幼齢のものを含む。"}},
	{"INSERT INTO 部番 VALUES (?, ?, ?)", []any{"02", "植物性生産品", nil}},
	{"INSERT INTO 類番 VALUES (?, ?, ?, ?)", []any{"01", "01", "生きている動物", "この類には、次の物品を含まない。"}},
	{"INSERT INTO 類番 VALUES (?, ?, ?, ?)", []any{"02", "01", "肉及び食用のくず肉", nil}},
	{"INSERT INTO 類番 VALUES (?, ?, ?, ?)", []any{"07", "02", "食用の野菜、根及び塊茎", nil}},
	{"INSERT INTO 項番 VALUES (?, ?, ?)", []any{"01.01", "01", "馬、ろば、ら馬及びヒニー（生きているものに限る。）"}},
	{"INSERT INTO 項番 VALUES (?, ?, ?)", []any{"01.02", "01", "牛（生きているものに限る。）"}},
	{"INSERT INTO 項番 VALUES (?, ?, ?)", []any{"02.01", "02", "牛の肉（生鮮のもの及び冷蔵したものに限る。）"}},
	{"INSERT INTO 項番 VALUES (?, ?, ?)", []any{"07.01", "07", "ばれいしょ（生鮮のもの及び冷蔵したものに限る。）"}},
	{"INSERT INTO 号番 VALUES (?, ?, ?)", []any{"0101.21", "01.01", "純粋種の繁殖用のもの"}},
	{"INSERT INTO 号番 VALUES (?, ?, ?)", []any{"0102.21", "01.02", "純粋種の繁殖用のもの"}},
	{"INSERT INTO 号番 VALUES (?, ?, ?)", []any{"0201.10", "02.01", "枝肉及び半丸枝肉"}},
	{"INSERT INTO 号番 VALUES (?, ?, ?)", []any{"0701.90", "07.01", "その他のもの"}},
}

// Entry is one seeded tariff entry.
type Entry struct {
	Code      string
	ItemName  string
	Unit1     string
	Unit2     string
	OtherLaws string
}

// Entries are seeded into both entry tables.
var Entries = []Entry{
	{CodePotato, "種ばれいしょ", "KG", "", "植"},
	{CodeBeef, "枝肉及び半丸枝肉", "KG", "", "検"},
	{CodeHorse, "純粋種の繁殖用のもの", "NO", "KG", "動"},
	{CodeCattle, "乳用の雌牛", "NO", "KG", "動"},
}

// BaseRate is the 関税率_基本 value seeded for every import entry.
const BaseRate = "3.8%"

// Open creates a dataset file under t.TempDir and returns its path.
func Open(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "統番.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open fixture dataset: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := Seed(db); err != nil {
		t.Fatalf("failed to seed fixture dataset: %v", err)
	}
	return db, path
}

// Seed creates the hierarchy and both entry tables and fills them.
func Seed(db *gorm.DB) error {
	for _, ddl := range hierarchyDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("failed to create hierarchy table: %w", err)
		}
	}
	for _, row := range hierarchyRows {
		if err := db.Exec(row.sql, row.args...).Error; err != nil {
			return fmt.Errorf("failed to insert hierarchy row: %w", err)
		}
	}

	entryCols := []string{model.ColTonban, model.ColItemName, model.ColUnit1, model.ColUnit2, model.ColOtherLaws}
	if err := createEntryTable(db, model.DirectionExport.Table(), entryCols); err != nil {
		return err
	}

	importCols := append([]string{}, entryCols...)
	for _, col := range model.RateColumns {
		importCols = append(importCols, col.Name)
	}
	if err := createEntryTable(db, model.DirectionImport.Table(), importCols); err != nil {
		return err
	}

	for _, e := range Entries {
		if err := db.Exec(fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?)",
			model.DirectionExport.Table(), strings.Join(entryCols, ", ")),
			e.Code, e.ItemName, e.Unit1, nullable(e.Unit2), e.OtherLaws).Error; err != nil {
			return fmt.Errorf("failed to insert export entry: %w", err)
		}
		if err := db.Exec(fmt.Sprintf("INSERT INTO %s (%s, 関税率_基本, 関税率_WTO) VALUES (?, ?, ?, ?, ?, ?, ?)",
			model.DirectionImport.Table(), strings.Join(entryCols, ", ")),
			e.Code, e.ItemName, e.Unit1, nullable(e.Unit2), e.OtherLaws, BaseRate, "無税").Error; err != nil {
			return fmt.Errorf("failed to insert import entry: %w", err)
		}
	}
	return nil
}

func createEntryTable(db *gorm.DB, table string, cols []string) error {
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = col + " TEXT"
	}
	if err := db.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
