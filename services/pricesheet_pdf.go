package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePriceSheetPDF creates a PDF price sheet using maroto/v2 and
// returns the raw PDF bytes.
func GeneratePriceSheetPDF(data *PriceSheetData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPriceSheetHeader(m, data)
	addPriceSheetTableHeader(m)
	for i, r := range data.Rows {
		addPriceSheetRow(m, i+1, r)
	}
	addPriceSheetSummary(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPriceSheetHeader adds the product name, types and date.
func addPriceSheetHeader(m core.Maroto, data *PriceSheetData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.ProductName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	typeLine := data.ProductType
	if data.FinishType != "" {
		if typeLine != "" {
			typeLine += " / "
		}
		typeLine += data.FinishType
	}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Type: "+typeLine, props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New("Date: "+data.GeneratedDate, props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addPriceSheetTableHeader adds the column header row.
func addPriceSheetTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Article", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Material", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Line Total", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addPriceSheetRow adds one tech card line to the table. Unresolved
// lines render in red with a placeholder name.
func addPriceSheetRow(m core.Maroto, index int, r CostRow) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	name := r.Name
	if r.Unresolved {
		name = "(material removed from catalog)"
		red := &props.Color{Red: 185, Green: 28, Blue: 28}
		baseText.Color = red
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", index), baseText)),
			col.New(2).Add(text.New(r.Article, leftText)),
			col.New(4).Add(text.New(name, leftText)),
			col.New(1).Add(text.New(formatQty(r.Quantity), rightText)),
			col.New(1).Add(text.New(r.Unit, baseText)),
			col.New(1).Add(text.New(FormatPrice(r.UnitPrice), rightText)),
			col.New(2).Add(text.New(FormatPrice(r.LineTotal), rightText)),
		),
	)
}

// addPriceSheetSummary adds material cost, markup, work cost and total.
func addPriceSheetSummary(m core.Maroto, data *PriceSheetData) {
	// Spacer before summary
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	summaryLine := func(label, value string) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(value, valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	summaryLine("Material Cost", FormatPrice(data.MaterialCost))
	summaryLine(fmt.Sprintf("Markup (%.1f%%)", data.MarkupPercent), FormatPrice(data.MaterialCost*data.MarkupPercent/100))
	summaryLine("Work Cost", FormatPrice(data.WorkCost))
	summaryLine("Total", FormatPrice(data.Total))

	if data.Unresolved > 0 {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(
						fmt.Sprintf("%d line(s) reference removed materials and are priced at 0.", data.Unresolved),
						props.Text{
							Size:  8,
							Align: align.Left,
							Color: &props.Color{Red: 185, Green: 28, Blue: 28},
						},
					),
				),
			),
		)
	}
}
