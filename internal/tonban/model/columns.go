package model

import "fmt"

// Direction selects which tariff entry table a request reads.
type Direction string

const (
	DirectionExport Direction = "export"
	DirectionImport Direction = "import"
)

// Table returns the entry table backing the direction.
func (d Direction) Table() string {
	if d == DirectionImport {
		return "輸入統番"
	}
	return "輸出統番"
}

// Validate reports whether d is a known direction.
func (d Direction) Validate() error {
	switch d {
	case DirectionExport, DirectionImport:
		return nil
	default:
		return fmt.Errorf("unknown direction %q", d)
	}
}

// Column is one projected column: the table alias it comes from and its name.
// The name doubles as the key in the returned record.
type Column struct {
	Alias string
	Name  string
}

// Expr renders the column as alias.name.
func (c Column) Expr() string {
	return c.Alias + "." + c.Name
}

// Column names of the hierarchy and entry tables.
const (
	ColPartCode        = "部番"
	ColChapterCode     = "類番"
	ColHeadingCode     = "項番"
	ColSubheadingCode  = "号番"
	ColTonban          = "統番"
	ColPartTitle       = "部タイトル"
	ColChapterTitle    = "類タイトル"
	ColHeadingTitle    = "項タイトル"
	ColSubheadingTitle = "号タイトル"
	ColPartNote        = "部注"
	ColChapterNote     = "類注"
	ColItemName        = "品名"
	ColUnit1           = "単位1"
	ColUnit2           = "単位2"
	ColOtherLaws       = "他法令"
)

// Table aliases used by the join.
const (
	AliasEntry      = "te"
	AliasSubheading = "g"
	AliasHeading    = "k"
	AliasChapter    = "r"
	AliasPart       = "b"
)

// CommonColumns is the denormalized projection shared by export and import rows.
var CommonColumns = []Column{
	{AliasPart, ColPartCode},
	{AliasChapter, ColChapterCode},
	{AliasHeading, ColHeadingCode},
	{AliasSubheading, ColSubheadingCode},
	{AliasEntry, ColTonban},
	{AliasPart, ColPartTitle},
	{AliasChapter, ColChapterTitle},
	{AliasHeading, ColHeadingTitle},
	{AliasSubheading, ColSubheadingTitle},
	{AliasPart, ColPartNote},
	{AliasChapter, ColChapterNote},
	{AliasEntry, ColItemName},
	{AliasEntry, ColUnit1},
	{AliasEntry, ColUnit2},
	{AliasEntry, ColOtherLaws},
}

// RateColumns are the import-only 関税率 columns, one per trade regime.
var RateColumns = rateColumns(
	"基本", "暫定", "WTO", "特恵GSP", "特恵LDC",
	"EPA_SG", "EPA_MX", "EPA_MY", "EPA_CL", "EPA_TH", "EPA_ID", "EPA_BN",
	"EPA_ASEAN", "EPA_PH", "EPA_CH", "EPA_VN", "EPA_IN", "EPA_PE", "EPA_AU",
	"EPA_MN", "EPA_CPTPP", "EPA_EU", "EPA_UK", "EPA_RCEP1", "EPA_RCEP2", "EPA_RCEP3",
	"US",
)

func rateColumns(regimes ...string) []Column {
	cols := make([]Column, len(regimes))
	for i, regime := range regimes {
		cols[i] = Column{AliasEntry, "関税率_" + regime}
	}
	return cols
}

// Columns returns the full projection for the direction.
func (d Direction) Columns() []Column {
	if d != DirectionImport {
		return CommonColumns
	}
	cols := make([]Column, 0, len(CommonColumns)+len(RateColumns))
	cols = append(cols, CommonColumns...)
	return append(cols, RateColumns...)
}

// SearchColumns are the text columns a keyword is matched against.
var SearchColumns = []Column{
	{AliasEntry, ColItemName},
	{AliasPart, ColPartTitle},
	{AliasChapter, ColChapterTitle},
	{AliasHeading, ColHeadingTitle},
	{AliasSubheading, ColSubheadingTitle},
}

// SubheadingCodeLength is the prefix of a 統番 that identifies its 号.
const SubheadingCodeLength = 7
