package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/papapumpkin/skillmesh/internal/index"
	"github.com/papapumpkin/skillmesh/internal/model"
)

func testModel() *model.Model {
	return &model.Model{
		Skills: []model.Skill{
			{ID: "react", Name: "React", Category: "framework"},
			{ID: "react-native", Name: "React Native", Category: "framework"},
			{ID: "react-query", Name: "React Query", Category: "data"},
			{ID: "zustand", Name: "Zustand", Category: "state", Path: "frontend/state/zustand"},
			{ID: "redux", Name: "Redux", Category: "state"},
			{ID: "mobx", Name: "MobX", Category: "state"},
			{ID: "redux-saga", Name: "Redux Saga"},
			{ID: "immer", Name: "Immer"},
		},
		Categories: []model.Category{
			{ID: "framework", Name: "framework"},
			{ID: "data", Name: "data fetching"},
			{ID: "state", Name: "state management", Exclusive: true, Members: []string{"zustand", "redux", "mobx"}},
		},
		Conflicts: []model.ConflictRule{
			{Skills: []string{"redux-saga", "mobx"}, Reason: "sagas need a redux store"},
		},
		Requires: []model.RequirementRule{
			{Skill: "react-query", Mode: model.RequireAnyOf, Needs: []string{"react", "react-native"}},
			{Skill: "redux-saga", Needs: []string{"redux", "immer"}},
		},
		Recommends: []model.RecommendationRule{
			{When: "react", Suggest: []model.Suggestion{{Skill: "zustand", Strength: model.StrengthStrong}, {Skill: "immer"}}, Reason: "hooks friendly"},
			{When: "redux", Suggest: []model.Suggestion{{Skill: "immer", Strength: model.StrengthStrong}}, Reason: "immutable updates"},
			{When: "react-native", Suggest: []model.Suggestion{{Skill: "zustand"}}},
		},
		Alternatives: []model.AlternativeGroup{
			{Purpose: "client state", Skills: []string{"zustand", "redux", "mobx"}},
		},
		Aliases: map[string]string{"zs": "frontend/state/zustand"},
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	idx, issues, err := index.Compile(testModel())
	if err != nil {
		t.Fatalf("Compile failed: %v (%v)", err, issues)
	}
	return New(idx)
}

func TestIsDisabled_ExclusiveCategoryScenario(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	sel := NewSet("zustand")

	for _, id := range []string{"redux", "mobx"} {
		disabled, reason := e.IsDisabled(sel, id)
		if !disabled || reason != "state management — choose one" {
			t.Errorf("IsDisabled(%s) = (%v, %q), want (true, %q)", id, disabled, reason, "state management — choose one")
		}
	}

	entries := e.SkillsInCategory(sel, "state")
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	var enabled []string
	for _, entry := range entries {
		if !entry.Disabled {
			enabled = append(enabled, entry.SkillID)
		}
	}
	if !reflect.DeepEqual(enabled, []string{"zustand"}) {
		t.Errorf("enabled = %v, want [zustand]", enabled)
	}
}

func TestIsDisabled_AnyOfScenario(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	sel := NewSet()

	disabled, reason := e.IsDisabled(sel, "react-query")
	if !disabled {
		t.Fatal("react-query should be disabled with an empty selection")
	}
	for _, name := range []string{"React", "React Native"} {
		if !strings.Contains(reason, name) {
			t.Errorf("reason %q should name %s", reason, name)
		}
	}

	sel.Add("react")
	if disabled, reason := e.IsDisabled(sel, "react-query"); disabled {
		t.Errorf("react-query should be enabled after selecting react, got %q", reason)
	}
}

func TestIsDisabled(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	tests := []struct {
		name       string
		selection  []string
		skill      string
		wantOff    bool
		wantReason string
	}{
		{"free skill", nil, "react", false, ""},
		{"alias lookup", []string{"redux"}, "zs", true, "state management — choose one"},
		{"path lookup", []string{"redux"}, "frontend/state/zustand", true, "state management — choose one"},
		{"explicit conflict", []string{"mobx"}, "redux-saga", true, "sagas need a redux store"},
		{"all mode lists missing", []string{"redux"}, "redux-saga", true, "requires Immer"},
		{"all mode satisfied", []string{"redux", "immer"}, "redux-saga", false, ""},
		{"all mode nothing selected", nil, "redux-saga", true, "requires Redux and Immer"},
		{"conflict outranks requirement", []string{"mobx", "immer"}, "redux-saga", true, "sagas need a redux store"},
		{"unknown skill", nil, "vue", true, `unknown skill "vue"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			off, reason := e.IsDisabled(NewSet(tt.selection...), tt.skill)
			if off != tt.wantOff || reason != tt.wantReason {
				t.Errorf("IsDisabled(%s) = (%v, %q), want (%v, %q)", tt.skill, off, reason, tt.wantOff, tt.wantReason)
			}
		})
	}
}

func TestIsDisabled_AuthoredRequirementReason(t *testing.T) {
	t.Parallel()
	m := testModel()
	m.Requires[0].Reason = "pick a React renderer first"
	idx, _, err := index.Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	_, reason := New(idx).IsDisabled(NewSet(), "react-query")
	if reason != "pick a React renderer first" {
		t.Errorf("reason = %q, want authored text", reason)
	}
}

func TestIsDisabled_NoFalseNegatives(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	idx := e.Index()

	for _, id := range idx.SkillIDs() {
		s, _ := idx.Skill(id)
		for _, c := range s.ConflictsWith {
			sel := NewSet(c.Skill)
			off, reason := e.IsDisabled(sel, id)
			if !off {
				t.Errorf("%s should be disabled when %s is selected", id, c.Skill)
			}
			if reason != c.Reason {
				t.Errorf("%s with %s selected: reason %q, want %q", id, c.Skill, reason, c.Reason)
			}
		}
	}
}

func TestIsRecommended(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	ok, reasons := e.IsRecommended(NewSet(), "immer")
	if ok || reasons != nil {
		t.Errorf("empty selection recommends nothing, got (%v, %v)", ok, reasons)
	}

	ok, reasons = e.IsRecommended(NewSet("redux", "react"), "immer")
	if !ok {
		t.Fatal("immer should be recommended")
	}
	want := []Reason{
		{From: "react", Strength: model.StrengthWeak, Text: "hooks friendly"},
		{From: "redux", Strength: model.StrengthStrong, Text: "immutable updates"},
	}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %+v, want %+v", reasons, want)
	}

	if ok, _ := e.IsRecommended(NewSet("react"), "ghost"); ok {
		t.Error("unknown skills are never recommended")
	}
}

func TestIsRecommended_Deterministic(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	sel := NewSet("react", "react-native")
	_, first := e.IsRecommended(sel, "zs")
	for i := 0; i < 10; i++ {
		_, again := e.IsRecommended(sel, "zs")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d returned %v, want %v", i, again, first)
		}
	}
}

func TestReason_String(t *testing.T) {
	t.Parallel()
	r := Reason{From: "react", Strength: model.StrengthStrong, Text: "hooks friendly"}
	if got, want := r.String(), "recommended by react (strong): hooks friendly"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	r.Text = ""
	if got, want := r.String(), "recommended by react (strong)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDescribeSkill(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	s, ok := e.DescribeSkill("zs")
	if !ok {
		t.Fatal("DescribeSkill(zs) should resolve the alias")
	}
	if s.ID != "zustand" || s.Name != "Zustand" {
		t.Errorf("got %s (%s), want zustand (Zustand)", s.ID, s.Name)
	}
	if want := []string{"redux", "mobx"}; !reflect.DeepEqual(s.Alternatives, want) {
		t.Errorf("alternatives = %v, want %v", s.Alternatives, want)
	}
	if len(s.RecommendedBy) != 2 {
		t.Errorf("recommendedBy = %v, want 2 entries", s.RecommendedBy)
	}

	if _, ok := e.DescribeSkill("vue"); ok {
		t.Error("DescribeSkill(vue) should fail")
	}
}

func TestSkillsInCategory(t *testing.T) {
	t.Parallel()
	e := newEngine(t)

	entries := e.SkillsInCategory(NewSet("react"), "state")
	got := make([]string, len(entries))
	for i, entry := range entries {
		got[i] = entry.SkillID
	}
	if want := []string{"zustand", "redux", "mobx"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("members = %v, want %v", got, want)
	}
	if !entries[0].Recommended || len(entries[0].Reasons) != 1 {
		t.Errorf("zustand should be recommended by react, got %+v", entries[0])
	}
	for _, entry := range entries {
		if entry.Disabled {
			t.Errorf("%s should be enabled with only react selected", entry.SkillID)
		}
	}

	if entries := e.SkillsInCategory(NewSet(), "nope"); entries != nil {
		t.Errorf("unknown category should return nil, got %v", entries)
	}
}

func TestNewSelection(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	sel, unknown := e.NewSelection("zs", "react", "vue", "zustand")
	if want := []string{"zustand", "react"}; !reflect.DeepEqual(sel.IDs(), want) {
		t.Errorf("IDs = %v, want %v", sel.IDs(), want)
	}
	if !reflect.DeepEqual(unknown, []string{"vue"}) {
		t.Errorf("unknown = %v, want [vue]", unknown)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()
	e := newEngine(t)
	if want := []string{"framework", "data", "state"}; !reflect.DeepEqual(e.Categories(), want) {
		t.Errorf("Categories() = %v, want %v", e.Categories(), want)
	}
}

func TestIsRecommended_SameTriggerTwoRules(t *testing.T) {
	t.Parallel()
	m := testModel()
	m.Recommends = append(m.Recommends,
		model.RecommendationRule{When: "redux", Suggest: []model.Suggestion{{Skill: "immer"}}, Reason: "fewer reducers"},
	)
	idx, issues, err := index.Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v (%v)", err, issues)
	}

	ok, reasons := New(idx).IsRecommended(NewSet("redux"), "immer")
	if !ok {
		t.Fatal("immer should be recommended")
	}
	want := []Reason{
		{From: "redux", Strength: model.StrengthStrong, Text: "immutable updates"},
		{From: "redux", Strength: model.StrengthWeak, Text: "fewer reducers"},
	}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("reasons = %+v, want %+v", reasons, want)
	}
}
