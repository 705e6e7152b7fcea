package advisor

import "testing"

func TestReplyReturnsCannedResponse(t *testing.T) {
	client := NewClient()

	known := make(map[string]bool, len(cannedResponses))
	for _, r := range cannedResponses {
		known[r] = true
	}
	for i := 0; i < 50; i++ {
		if reply := client.Reply("any message"); !known[reply] {
			t.Fatalf("reply is not from the canned list: %q", reply)
		}
	}
}

func TestRecommendReturnsTopThree(t *testing.T) {
	client := NewClient()

	got := client.Recommend([]interface{}{"A", "B"})
	if len(got) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(got))
	}
	want := []CareerRecommendation{
		{Title: "Software Developer", Match: 85, Description: "Build applications and systems"},
		{Title: "Data Scientist", Match: 78, Description: "Analyze data to drive decisions"},
		{Title: "UX Designer", Match: 72, Description: "Design user-friendly interfaces"},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recommendation %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// 答案内容不影响结果
	other := client.Recommend(nil)
	for i := range want {
		if other[i] != want[i] {
			t.Fatalf("recommendations must not depend on answers, got %+v", other)
		}
	}

	// 返回的是副本，调用方改写不会污染静态表
	got[0].Title = "mutated"
	again := client.Recommend(nil)
	if again[0].Title != "Software Developer" {
		t.Fatal("Recommend must return an independent copy")
	}
}

func TestParseResumePayload(t *testing.T) {
	parsed := ParseResume("cv.pdf", "application/pdf")

	if len(parsed.Skills) == 0 || parsed.Skills[0] != "JavaScript" {
		t.Fatalf("unexpected skills: %v", parsed.Skills)
	}
	if len(parsed.Experience) != 2 {
		t.Fatalf("expected 2 experience entries, got %d", len(parsed.Experience))
	}
	if len(parsed.Education) != 1 {
		t.Fatalf("expected 1 education entry, got %d", len(parsed.Education))
	}
	if parsed.Summary == "" {
		t.Fatal("summary must not be empty")
	}

	// 解析结果是占位的固定内容，与文件无关
	other := ParseResume("resume.docx", "application/msword")
	if other.Summary != parsed.Summary {
		t.Fatal("parsed payload must not vary by file")
	}
}
