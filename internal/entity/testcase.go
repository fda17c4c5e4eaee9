package entity

import (
	"fmt"
	"strings"

	"github.com/jiwoo-han/testcase-gen/constants"
)

// TestItem is one row of the QA sheet: a category hierarchy, the scenario, the
// expected result, and one verdict per platform.
type TestItem struct {
	Number        string `json:"number"`        // TC-01, TC-02, ...
	Category      string `json:"category"`      // 대분류
	SubCategory   string `json:"subCategory"`   // 중분류
	SmallCategory string `json:"smallCategory"` // 소분류, may be empty
	Content       string `json:"content"`       // 항목내용
	Result        string `json:"result"`        // 결과
	JiraResult    string `json:"jiraResult"`
	AdResult      string `json:"adResult"`
	IosResult     string `json:"iosResult"`
	PcResult      string `json:"pcResult"`
}

// TestDocument is the ordered set of items produced for one input document.
// Insertion order is the row order of the exported sheet.
type TestDocument struct {
	TestItems []TestItem `json:"testItems"`
}

// NumberFor synthesizes the stable identifier for the item at index i.
func NumberFor(i int) string {
	return fmt.Sprintf("TC-%02d", i+1)
}

// WithDefaults fills the blanks the model is allowed to leave: a missing number
// is synthesized from the row index, category/content get their placeholder
// labels, and the verdict fields default to Not Tested.
func (t TestItem) WithDefaults(index int) TestItem {
	if strings.TrimSpace(t.Number) == "" {
		t.Number = NumberFor(index)
	}
	if t.Category == "" {
		t.Category = "분류 없음"
	}
	if t.Content == "" {
		t.Content = "내용 없음"
	}
	if t.JiraResult == "" {
		t.JiraResult = constants.VerdictNotTested
	}
	if t.AdResult == "" {
		t.AdResult = constants.VerdictNotTested
	}
	if t.IosResult == "" {
		t.IosResult = constants.VerdictNotTested
	}
	if t.PcResult == "" {
		t.PcResult = constants.VerdictNotTested
	}
	return t
}

// IsParseErrorSentinel reports whether the document is the single-item
// placeholder produced when model output could not be recovered.
func (d TestDocument) IsParseErrorSentinel() bool {
	return len(d.TestItems) == 1 && d.TestItems[0].Category == constants.ParseErrorCategory
}
