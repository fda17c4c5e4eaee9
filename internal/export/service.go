package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/common"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
)

const sheetName = "테스트케이스"

var headers = []string{"번호", "대분류", "중분류", "소분류", "항목내용", "결과", "JIRA", "AD", "iOS", "PC"}

var colWidths = []float64{10, 15, 15, 15, 40, 25, 12, 12, 12, 12}

// verdict columns are G..J (1-based 7..10)
const firstVerdictCol = 7

// Service turns a TestDocument into a styled XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// styleSet holds the workbook style IDs, built once per export.
type styleSet struct {
	header        int
	verdictHeader int
	number        int
	text          int
	plain         int
	pass          int
	fail          int
	notTested     int
}

// Export writes the document to a workbook. A nil item sequence is invalid
// input; an empty or parse-error-sentinel document is replaced by a fixed
// 3-row illustrative sample so the caller always gets a usable sheet.
func (s *Service) Export(_ context.Context, doc entity.TestDocument) ([]byte, error) {
	start := time.Now()

	if doc.TestItems == nil {
		return nil, common.NewAppError("INVALID_INPUT", "testItems is required",
			common.ErrInvalidInput)
	}

	items := doc.TestItems
	sampled := false
	if len(items) == 0 || doc.IsParseErrorSentinel() {
		items = sampleItems()
		sampled = true
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	st, err := buildStyles(f)
	if err != nil {
		return nil, fmt.Errorf("build styles: %w", err)
	}

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, w)
	}

	// Header row: gray and bold, verdict headers darker with white text.
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
		style := st.header
		if i+1 >= firstVerdictCol {
			style = st.verdictHeader
		}
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}

	for i, item := range items {
		safe := item.WithDefaults(i)
		row := i + 2

		values := []string{
			safe.Number, safe.Category, safe.SubCategory, safe.SmallCategory,
			safe.Content, safe.Result,
			withGlyph(safe.JiraResult), withGlyph(safe.AdResult),
			withGlyph(safe.IosResult), withGlyph(safe.PcResult),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
			_ = f.SetCellStyle(sheetName, cell, cell, s.styleFor(st, col+1, v))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"sampled", sampled,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// styleFor picks the style for a body cell: bold centered numbers, wrapped
// left/top prose for content and result, and verdict shading by outcome.
func (s *Service) styleFor(st styleSet, col int, value string) int {
	switch {
	case col == 1:
		return st.number
	case col == 5 || col == 6:
		return st.text
	case col >= firstVerdictCol:
		switch {
		case strings.Contains(value, constants.VerdictPass):
			return st.pass
		case strings.Contains(value, constants.VerdictFail):
			return st.fail
		default:
			return st.notTested
		}
	default:
		return st.plain
	}
}

func withGlyph(v string) string {
	if strings.Contains(v, constants.DropdownGlyph) {
		return v
	}
	return v + " " + constants.DropdownGlyph
}

func buildStyles(f *excelize.File) (styleSet, error) {
	thin := []excelize.Border{
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "middle", WrapText: true}
	leftTop := &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}
	wrapOnly := &excelize.Alignment{WrapText: true}

	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}

	var (
		st  styleSet
		err error
	)
	mk := func(style *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(style)
		return id
	}

	st.header = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      fill("808080"),
		Alignment: center,
		Border:    thin,
	})
	st.verdictHeader = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      fill("404040"),
		Alignment: center,
		Border:    thin,
	})
	st.number = mk(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: center,
		Border:    thin,
	})
	st.text = mk(&excelize.Style{Alignment: leftTop, Border: thin})
	st.plain = mk(&excelize.Style{Alignment: wrapOnly, Border: thin})
	st.pass = mk(&excelize.Style{Fill: fill("CCFFCC"), Alignment: center, Border: thin})
	st.fail = mk(&excelize.Style{Fill: fill("FFCCCC"), Alignment: center, Border: thin})
	st.notTested = mk(&excelize.Style{Fill: fill("EEEEEE"), Alignment: center, Border: thin})

	return st, err
}

// sampleItems is the fixed illustrative dataset written when the incoming
// document is empty or carries only the parse-error sentinel.
func sampleItems() []entity.TestItem {
	return []entity.TestItem{
		{
			Number: "TC-01", Category: "아이템", SubCategory: "장비아이템", SmallCategory: "무기",
			Content:    "캐릭터가 무기 아이템을 인벤토리에서 장착 버튼으로 장착",
			Result:     "캐릭터 모델에 해당 무기가 적용되고 능력치가 증가됨",
			JiraResult: "Pass", AdResult: "Not Tested", IosResult: "Not Tested", PcResult: "Not Tested",
		},
		{
			Number: "TC-02", Category: "아이템", SubCategory: "소비아이템", SmallCategory: "포션",
			Content:    "HP가 감소된 상태에서 HP 포션 사용",
			Result:     "캐릭터 HP가 포션 효과만큼 증가하고 인벤토리에서 해당 포션 수량 감소",
			JiraResult: "Not Tested", AdResult: "Fail", IosResult: "Not Tested", PcResult: "Not Tested",
		},
		{
			Number: "TC-03", Category: "아이템", SubCategory: "재료아이템", SmallCategory: "강화석",
			Content:    "장비 강화 UI에서 강화석을 이용한 무기 강화 시도",
			Result:     "정해진 확률에 따라 강화 성공/실패가 결정되고 강화석이 소모됨",
			JiraResult: "Not Tested", AdResult: "Not Tested", IosResult: "Not Tested", PcResult: "Not Tested",
		},
	}
}
