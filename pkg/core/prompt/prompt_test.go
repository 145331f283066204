package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinPrompts(t *testing.T) {
	r := NewRegistry()
	if err := LoadBuiltin(r); err != nil {
		t.Fatalf("LoadBuiltin: %v", err)
	}
	pt, err := r.GetPrompt(PromptIDs.CommentaryDealReview)
	if err != nil {
		t.Fatal(err)
	}
	if pt.Category != "commentary" {
		t.Errorf("category = %q", pt.Category)
	}
	if !strings.Contains(pt.SystemPrompt, "JSON") {
		t.Error("system prompt should ask for JSON")
	}
}

func TestRenderUserPrompt(t *testing.T) {
	pt, err := Get().GetPrompt(PromptIDs.CommentaryDealReview)
	if err != nil {
		t.Fatal(err)
	}
	ctx := NewContext().
		Set("Industry", "HVAC Services").
		Set("Method", "SDE").
		Set("Low", "$500,000").
		Set("Mid", "$600,000").
		Set("High", "$800,000").
		Set("SDE", "$200,000").
		Set("EBITDA", "$75,000").
		Set("Score", 72).
		Set("Grade", "B").
		Set("Asking", "").
		Set("Pricing", "").
		Set("Risks", []string{}).
		Set("Strengths", []string{"Established business"}).
		Set("RedFlags", []string{})

	out, err := RenderUserPrompt(pt, ctx)
	if err != nil {
		t.Fatalf("RenderUserPrompt: %v", err)
	}
	for _, want := range []string{"Industry: HVAC Services", "$500,000 (low)", "- Established business", "Red flags:\n- none", "buyer_questions"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered prompt missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Asking price") {
		t.Error("asking price line should be omitted when empty")
	}

	if _, err := RenderUserPrompt(pt, NewContext()); err == nil {
		t.Error("expected error for missing variables")
	}
}

func TestLoadFromDirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "commentary"), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := `{
  // Hjson comments are allowed in override files
  system_prompt: Be terse.
  user_prompt_template: "Value {{.Industry}}"
}`
	if err := os.WriteFile(filepath.Join(dir, "commentary", "deal_review.hjson"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := LoadBuiltin(r); err != nil {
		t.Fatal(err)
	}
	n, err := LoadFromDirectory(r, dir)
	if err != nil {
		t.Fatalf("LoadFromDirectory: %v", err)
	}
	if n != 1 {
		t.Errorf("loaded %d prompts, want 1", n)
	}
	pt, _ := r.GetPrompt("commentary.deal_review")
	if pt.SystemPrompt != "Be terse." || pt.Category != "commentary" {
		t.Errorf("override not applied: %+v", pt)
	}
	if r.Count() != 1 {
		t.Errorf("count = %d", r.Count())
	}

	if _, err := LoadFromDirectory(r, filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRegisterRequiresID(t *testing.T) {
	if err := NewRegistry().Register(&PromptTemplate{}); err == nil {
		t.Error("expected error for empty ID")
	}
}
