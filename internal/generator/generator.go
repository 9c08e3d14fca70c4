package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tirasundara/mobile-money-etl/internal/domain"
)

// Defect is the kind of breakage applied to a dirty row
type Defect int

const (
	DefectNone Defect = iota
	DefectDuplicateID
	DefectReversedDates
	DefectUnknownType
	DefectAmountOutOfRange
	DefectBlankName
	DefectMalformedDate
)

var defects = []Defect{
	DefectDuplicateID,
	DefectReversedDates,
	DefectUnknownType,
	DefectAmountOutOfRange,
	DefectBlankName,
	DefectMalformedDate,
}

var (
	firstNames = []string{"John", "Mary", "Peter", "Grace", "James", "Alice", "Samuel", "Faith", "David", "Mercy", "Brian", "Esther"}
	lastNames  = []string{"Otieno", "Wanjiku", "Kamau", "Njeri", "Mwangi", "Achieng", "Kiptoo", "Mutua", "Wafula", "Chebet"}
	businesses = []string{"Kenya Power", "Nairobi Water", "Safaricom", "Naivas Supermarket", "Java House", "KPLC Prepaid", "Zuku Fibre"}
	agents     = []string{"Agent 1042", "Agent 2271", "Agent 3380", "Agent 4415", "Agent 5506"}
)

// Generator produces synthetic raw transactions in the M-Pesa export layout.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumTransactions <= 0 {
		cfg.NumTransactions = def.NumTransactions
	}
	if cfg.DirtyRatio < 0 {
		cfg.DirtyRatio = 0
	}
	if cfg.DirtyRatio > 1 {
		cfg.DirtyRatio = 1
	}
	if cfg.Start.IsZero() {
		cfg.Start = def.Start
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = def.DateFormat
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Row is one generated record together with the defect injected into it
type Row struct {
	Raw    domain.RawTransaction
	Defect Defect
}

// Generate synthesises rows in start-time order. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) ([]Row, error) {
	rows := make([]Row, 0, g.cfg.NumTransactions)
	at := g.cfg.Start

	for i := 0; i < g.cfg.NumTransactions; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		at = at.Add(time.Duration(1+g.rand.Intn(3600)) * time.Second)
		row := Row{Raw: g.clean(i, at)}

		if g.rand.Float64() < g.cfg.DirtyRatio {
			row.Defect = defects[g.rand.Intn(len(defects))]
			// A duplicate needs an earlier id to copy
			if row.Defect == DefectDuplicateID && len(rows) == 0 {
				row.Defect = DefectReversedDates
			}
			g.breakRow(&row, rows)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func (g *Generator) clean(i int, start time.Time) domain.RawTransaction {
	txnType := domain.TransactionTypes[g.rand.Intn(len(domain.TransactionTypes))]
	end := start.Add(time.Duration(3+g.rand.Intn(120)) * time.Second)

	return domain.RawTransaction{
		Line:                 i + 2,
		TransactionStartDate: start.Format(g.cfg.DateFormat),
		TransactionEndDate:   end.Format(g.cfg.DateFormat),
		TransactionType:      string(txnType),
		TransID:              g.transID(i),
		TransAmount:          g.amount(txnType),
		TransReceiver:        g.receiver(txnType),
		TransSender:          g.personName(),
	}
}

func (g *Generator) breakRow(row *Row, previous []Row) {
	raw := &row.Raw

	switch row.Defect {
	case DefectDuplicateID:
		raw.TransID = previous[g.rand.Intn(len(previous))].Raw.TransID
	case DefectReversedDates:
		raw.TransactionStartDate, raw.TransactionEndDate = raw.TransactionEndDate, raw.TransactionStartDate
	case DefectUnknownType:
		raw.TransactionType = []string{"Lottery", "send money", "Reversal"}[g.rand.Intn(3)]
	case DefectAmountOutOfRange:
		raw.TransAmount = []string{"0", "-150", "300000", "abc"}[g.rand.Intn(4)]
	case DefectBlankName:
		if g.rand.Intn(2) == 0 {
			raw.TransSender = ""
		} else {
			raw.TransReceiver = "   "
		}
	case DefectMalformedDate:
		raw.TransactionStartDate = strings.ReplaceAll(raw.TransactionStartDate, "-", "/")
	}
}

// transID mimics the ten character receipt codes of the export, unique by index
func (g *Generator) transID(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return fmt.Sprintf("R%c%c%07d", letters[g.rand.Intn(len(letters))], letters[g.rand.Intn(len(letters))], i)
}

func (g *Generator) amount(txnType domain.TransactionType) string {
	var value float64
	switch txnType {
	case domain.AirtimePurchase:
		value = float64(5 + g.rand.Intn(995))
	case domain.PayBill:
		value = 50 + g.rand.Float64()*20000
	default:
		value = 10 + g.rand.Float64()*g.rand.Float64()*150000
	}
	return fmt.Sprintf("%.2f", value)
}

func (g *Generator) receiver(txnType domain.TransactionType) string {
	switch txnType {
	case domain.PayBill, domain.AirtimePurchase:
		return businesses[g.rand.Intn(len(businesses))]
	case domain.Withdrawal, domain.Deposit:
		return agents[g.rand.Intn(len(agents))]
	default:
		return g.personName()
	}
}

func (g *Generator) personName() string {
	return firstNames[g.rand.Intn(len(firstNames))] + " " + lastNames[g.rand.Intn(len(lastNames))]
}
