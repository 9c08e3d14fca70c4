package generator

import (
	"fmt"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
	"github.com/tirasundara/mobile-money-etl/pkg/fileutil"
)

// WriteCSV writes rows as an M-Pesa export with the raw header, replacing path atomically.
func WriteCSV(path string, rows []Row) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Raw.Values())
	}

	if err := fileutil.WriteCSVAtomic(path, domain.RawColumns, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// AllDefects lists every Defect, DefectNone first, in a fixed order for reporting
var AllDefects = append([]Defect{DefectNone}, defects...)

// CountDefects tallies rows by injected defect
func CountDefects(rows []Row) map[Defect]int {
	counts := make(map[Defect]int)
	for _, row := range rows {
		counts[row.Defect]++
	}
	return counts
}

func (d Defect) String() string {
	switch d {
	case DefectNone:
		return "none"
	case DefectDuplicateID:
		return "duplicate_id"
	case DefectReversedDates:
		return "reversed_dates"
	case DefectUnknownType:
		return "unknown_type"
	case DefectAmountOutOfRange:
		return "amount_out_of_range"
	case DefectBlankName:
		return "blank_name"
	case DefectMalformedDate:
		return "malformed_date"
	default:
		return fmt.Sprintf("defect(%d)", int(d))
	}
}
