package llm

import "strings"

// BuildPrompt composes the test-case synthesis prompt: persona, the document
// text, the exact JSON shape expected back, and the generation rules.
func BuildPrompt(documentText string) string {
	parts := []string{
		"당신은 기획서를 테스트케이스로 변환하는 전문가입니다. 다음 기획서 내용을 철저히 분석하여 모든 테스트케이스를 JSON 형식으로 생성해주세요.",
		"",
		"기획서 내용:",
		documentText,
		"",
		"다음 JSON 형식으로 테스트케이스를 구성해주세요:",
		promptShapeExample,
		"",
		"기획서의 내용을 분석하여 다음 규칙에 따라 테스트케이스를 생성해주세요:",
		"",
		`1. 번호(number)는 "TC-01", "TC-02"와 같은 형식으로 순차적으로 부여합니다.`,
		"2. 대분류(category)는 주요 시스템이나 기능 카테고리 (예: 아이템, 퀘스트, 상점, 인벤토리 등)",
		"3. 중분류(subCategory)는 시스템 내 세부 카테고리 (예: 장비아이템, 소비아이템, 재료아이템 등)",
		"4. 소분류(smallCategory)는 더 세부적인 분류 (예: 무기, 방어구, 포션, 스크롤 등)",
		"5. 항목내용(content)은 구체적인 테스트 시나리오로, 사용자 행동 위주로 설명",
		"6. 결과(result)는 해당 테스트의 기대 결과나 확인 방법을 명확하게 설명",
		`7. 각 플랫폼별 결과(jiraResult, adResult, iosResult, pcResult)는 모두 "Not Tested"로 설정하세요.`,
		"",
		"중요한 가이드라인:",
		"- 기획서의 모든 내용을 커버하는 완전한 테스트케이스 세트를 생성해야 합니다.",
		"- 기획서에서 설명된 각 기능, 동작, 시나리오에 대해 최소 하나 이상의 테스트케이스를 작성하세요.",
		"- 기획서에 명시적으로 서술되지 않은 일반적인 예외 케이스도 포함하세요 (오류 처리, 경계값 등).",
		"- 테스트케이스는 최소 10개, 최대 50개까지 생성할 수 있으며, 기획서의 복잡도에 따라 조정하세요.",
		"- 모든 필드를 반드시 작성하세요(번호 포함).",
		"- 특수문자, 줄바꿈, 따옴표를 최소화하고 간결하게 작성하세요.",
		"- 테스트 내용(content)은 '어떤 조건에서 무엇을 했을 때'와 같은 형식으로 작성하세요.",
		"- 결과(result)는 '어떤 결과가 나타난다'와 같은 형식으로 작성하세요.",
		"- 유효한 JSON 형식으로 반환하는 것이 가장 중요합니다.",
		"",
		"기획서의 내용에 따라 관련 있는 테스트케이스를 빠짐없이 생성하세요. 모든 테스트케이스는 검증 가능하고 구체적이어야 합니다.",
	}
	return strings.Join(parts, "\n")
}

const promptShapeExample = `{
  "testItems": [
    {
      "number": "TC-01",
      "category": "아이템",
      "subCategory": "장비아이템",
      "smallCategory": "무기",
      "content": "캐릭터가 무기 아이템을 인벤토리에서 장착 버튼으로 장착",
      "result": "캐릭터 모델에 해당 무기가 적용되고 능력치가 증가됨",
      "jiraResult": "Not Tested",
      "adResult": "Not Tested",
      "iosResult": "Not Tested",
      "pcResult": "Not Tested"
    },
    {
      "number": "TC-02",
      "category": "아이템",
      "subCategory": "소비아이템",
      "smallCategory": "포션",
      "content": "HP가 감소된 상태에서 HP 포션 사용",
      "result": "캐릭터 HP가 포션 효과만큼 증가하고 인벤토리에서 해당 포션 수량 감소",
      "jiraResult": "Not Tested",
      "adResult": "Not Tested",
      "iosResult": "Not Tested",
      "pcResult": "Not Tested"
    }
  ]
}`
