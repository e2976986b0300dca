package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func signupSchema() *schema.Schema {
	return schema.New("signup").Schema(
		schema.NewTextInput("name").Required(true),
		schema.NewSelect("plan").Options(
			schema.Choice{Value: "free", Label: "Free"},
			schema.Choice{Value: "pro", Label: "Pro"},
		),
		schema.NewSection("Billing").VisibleWhen(`plan == "pro"`).Schema(
			schema.NewTextInput("billing.card").Password().Required(true),
		),
		schema.NewToggle("newsletter"),
		schema.NewSelect("topics").Multiple(true).Options(
			schema.Choice{Value: "go", Label: "Go"},
			schema.Choice{Value: "ops", Label: "Ops"},
		),
		schema.NewTextarea("bio"),
		schema.NewHidden("source").Default("cli"),
		schema.NewRepeater("seats").MinItems(1).MaxItems(2).Schema(
			schema.NewTextInput("email").Email(),
			schema.NewTextInput("qty").Numeric().AfterStateUpdated(func(u *schema.StateUpdate) {
				qty, _ := u.Value.(int64)
				u.Set("double", qty*2)
			}),
		),
		schema.NewAction("save"),
	)
}

func TestFillWalksVisibleFields(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"", "Ann", "bad", "a@b.co", "3", "c@d.io", "4"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{1, 0}},
		confirm:   []bool{true, true},
		textAreas: []string{"hi"},
	}
	got, err := New(WithDriver(driver)).Fill(context.Background(), signupSchema(), nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"name":       "Ann",
		"plan":       "free",
		"newsletter": true,
		"topics":     []any{"go", "ops"},
		"bio":        "hi",
		"seats": []any{
			map[string]any{"email": "a@b.co", "qty": int64(3), "double": int64(6)},
			map[string]any{"email": "c@d.io", "qty": int64(4), "double": int64(8)},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two validation messages, got %v", driver.infoMessages)
	}
	if driver.passPos != 0 {
		t.Fatalf("hidden billing section was prompted")
	}
}

func TestFillRevealsSectionsFromAnswers(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"Bo", "x@y.z", "3"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{}},
		passwords: []string{"4242"},
		confirm:   []bool{false, false},
		textAreas: []string{""},
	}
	prefill := map[string]any{
		"name":  "Bo",
		"seats": []any{map[string]any{"email": "x@y.z"}},
	}

	got, err := New(WithDriver(driver)).Fill(context.Background(), signupSchema(), prefill)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	billing, _ := got["billing"].(map[string]any)
	if billing["card"] != "4242" {
		t.Fatalf("billing card not collected: %#v", got)
	}
	seats := got["seats"].([]any)
	if len(seats) != 1 {
		t.Fatalf("expected the prefilled seat only, got %#v", seats)
	}
	if seats[0].(map[string]any)["double"] != int64(6) {
		t.Fatalf("callback did not run for prefilled seat: %#v", seats[0])
	}
}

func TestFillAborts(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{}
	_, err := New(WithDriver(driver)).Fill(context.Background(), signupSchema(), nil)
	if err == nil || err.Error() != "no input scripted" {
		t.Fatalf("expected driver error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(WithDriver(driver)).Fill(ctx, signupSchema(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
