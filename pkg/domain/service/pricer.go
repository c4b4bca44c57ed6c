package service

import (
	"github.com/shopspring/decimal"

	"campusstore/pkg/domain/model"
)

// PrintRates is the per-copy price table used for print estimates.
type PrintRates struct {
	Base          decimal.Decimal
	BaseA3        decimal.Decimal
	ColorExtra    decimal.Decimal
	ColorExtraA3  decimal.Decimal
	TwoSidedExtra decimal.Decimal
}

var DefaultPrintRates = PrintRates{
	Base:          decimal.NewFromInt(8),
	BaseA3:        decimal.NewFromInt(12),
	ColorExtra:    decimal.NewFromInt(16),
	ColorExtraA3:  decimal.NewFromInt(24),
	TwoSidedExtra: decimal.NewFromInt(4),
}

type PrintPricer interface {
	// Estimate returns false when the specification is incomplete.
	Estimate(spec model.PrintSpecification) (decimal.Decimal, bool)
}

func NewPrintPricer(rates PrintRates) PrintPricer {
	return &printPricer{rates: rates}
}

type printPricer struct {
	rates PrintRates
}

func (p *printPricer) Estimate(spec model.PrintSpecification) (decimal.Decimal, bool) {
	if !spec.Complete() {
		return decimal.Decimal{}, false
	}

	perCopy := p.rates.Base
	colorExtra := p.rates.ColorExtra
	if spec.PaperSize == model.PaperA3 {
		perCopy = p.rates.BaseA3
		colorExtra = p.rates.ColorExtraA3
	}
	if spec.Color == model.Color {
		perCopy = perCopy.Add(colorExtra)
	}
	if spec.TwoSided {
		perCopy = perCopy.Add(p.rates.TwoSidedExtra)
	}

	return perCopy.Mul(decimal.NewFromInt(int64(spec.Copies))), true
}
