package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type stubStrategy struct {
	out string
	err error
}

func (s *stubStrategy) Summarize(ctx context.Context, text string) (string, error) {
	return s.out, s.err
}

func TestTruncate_BoundedOutput(t *testing.T) {
	in := strings.Repeat("가", 200) + "."
	out := Truncate(in, 50)
	if n := utf8.RuneCountInString(out); n > 51 {
		t.Errorf("truncated output too long: %d runes (%q)", n, out)
	}
	last, _ := utf8.DecodeLastRuneInString(out)
	if !terminators[last] && last != '…' {
		t.Errorf("output ends in %q, want terminator or ellipsis", last)
	}
}

func TestTruncate_PrefersSentenceBoundary(t *testing.T) {
	in := "첫 번째 문장은 여기에서 끝난다. 두 번째 문장은 길게 이어지다가 잘리게 된다 어딘가에서"
	out := Truncate(in, 40)
	if !strings.HasSuffix(out, ".") && !strings.HasSuffix(out, "…") {
		t.Errorf("unexpected ending: %q", out)
	}
}

func TestTruncate_ShortInputUntouched(t *testing.T) {
	in := "짧은 텍스트"
	if out := Truncate(in, 300); out != in {
		t.Errorf("short input modified: %q", out)
	}
}

func TestDispatcher_ShortTextReturnedVerbatim(t *testing.T) {
	d := NewDispatcher(&stubStrategy{out: "요약되면 안 되는 텍스트"}, 300)
	in := "한국은행이 오늘 기준금리를 동결하기로 결정했다."
	out := d.Summarize(context.Background(), in)
	if out != in {
		t.Errorf("short text should pass through unchanged, got %q", out)
	}
}

func TestDispatcher_FallsBackOnStrategyError(t *testing.T) {
	d := NewDispatcher(&stubStrategy{err: errors.New("api down")}, 50)
	in := strings.Repeat("정부가 새로운 정책을 오늘 발표했다. ", 20)
	out := d.Summarize(context.Background(), in)
	if out == "" {
		t.Fatalf("expected truncation fallback, got empty string")
	}
	if n := utf8.RuneCountInString(out); n > 51 {
		t.Errorf("fallback output too long: %d runes", n)
	}
}

func TestDispatcher_RejectsDegenerateSummary(t *testing.T) {
	d := NewDispatcher(&stubStrategy{out: "너무 짧음"}, 300)
	in := strings.Repeat("경제 지표가 개선되고 있다는 분석이 나왔다. ", 10)
	if out := d.Summarize(context.Background(), in); out != "" {
		t.Errorf("sub-20-rune summary should become empty, got %q", out)
	}
}

func TestDispatcher_PostCleansStrategyOutput(t *testing.T) {
	d := NewDispatcher(&stubStrategy{out: "정부가 새 정책을 발표했다. (사진=연합뉴스) 시장은 긍정적으로 반응했다."}, 300)
	in := strings.Repeat("정부 정책에 대한 본문이 충분히 길게 이어진다. ", 10)
	out := d.Summarize(context.Background(), in)
	if strings.Contains(out, "(사진=") {
		t.Errorf("caption survived post-processing: %q", out)
	}
	if strings.Contains(out, "기자 =") {
		t.Errorf("byline survived post-processing: %q", out)
	}
}

func TestDispatcher_EmptyInput(t *testing.T) {
	d := NewDispatcher(nil, 300)
	if out := d.Summarize(context.Background(), "   "); out != "" {
		t.Errorf("expected empty output for blank input, got %q", out)
	}
}

func TestEnsureSentenceEnd(t *testing.T) {
	complete := "이 문장은 완전하게 끝났다."
	if got := ensureSentenceEnd(complete); got != complete {
		t.Errorf("complete sentence altered: %q", got)
	}

	daEnding := "이 문장은 다로 끝난다"
	if got := ensureSentenceEnd(daEnding); got != daEnding {
		t.Errorf("sentence ending in 다 altered: %q", got)
	}

	broken := "첫 문장은 온전하게 여기에서 끝난다. 두 번째 문장은 중간에서 끊"
	got := ensureSentenceEnd(broken)
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected trim back to last terminator, got %q", got)
	}
}

type recordingModel struct {
	gotText string
	gotOpts GenerateOptions
}

func (m *recordingModel) Generate(ctx context.Context, text string, opts GenerateOptions) (string, error) {
	m.gotText = text
	m.gotOpts = opts
	return "모델이 생성한 요약 문장이 여기에 들어간다.", nil
}

func TestLocalStrategy_WindowAndOptions(t *testing.T) {
	model := &recordingModel{}
	fast := NewKosumFast(model)

	long := strings.Repeat("가나다라마바사아자차카타파하 ", 100)
	if _, err := fast.Summarize(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := utf8.RuneCountInString(model.gotText); n > 512 {
		t.Errorf("fast variant exceeded its input window: %d runes", n)
	}
	if model.gotOpts.NumBeams != 5 || model.gotOpts.NoRepeatNGramSize != 3 {
		t.Errorf("fast variant decoding options wrong: %+v", model.gotOpts)
	}

	tuned := NewKosumTuned(model)
	if _, err := tuned.Summarize(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := utf8.RuneCountInString(model.gotText); n > 1024 {
		t.Errorf("tuned variant exceeded its input window: %d runes", n)
	}
	if model.gotOpts.NumBeams != 4 || model.gotOpts.NoRepeatNGramSize != 2 {
		t.Errorf("tuned variant decoding options wrong: %+v", model.gotOpts)
	}
}

func TestLocalStrategy_NilModelErrors(t *testing.T) {
	s := NewKosumFast(nil)
	if _, err := s.Summarize(context.Background(), "아무 텍스트"); err == nil {
		t.Errorf("expected error with nil model")
	}
}
