package handler

import (
	"net/http"
	"testing"

	"EDT/internal/modules/ai/application/service"
	"EDT/internal/modules/ai/infrastructure/persistence"
	"EDT/internal/modules/ai/infrastructure/pipeline"
	"EDT/internal/modules/ai/infrastructure/reader"
	chatPersistence "EDT/internal/modules/chat/infrastructure/persistence"
	goalPersistence "EDT/internal/modules/goal/infrastructure/persistence"
	projectPersistence "EDT/internal/modules/project/infrastructure/persistence"
	techlogPersistence "EDT/internal/modules/techlog/infrastructure/persistence"
	userPersistence "EDT/internal/modules/user/infrastructure/persistence"
	"EDT/internal/testutil"
	"EDT/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// newDemoRouter 不配置模型，全部走兜底或报错
func newDemoRouter(t *testing.T) *gin.Engine {
	db := testutil.DB(t)
	logs := techlogPersistence.NewTechnicalLogRepository(db)
	skills := persistence.NewSkillRepository(db)
	rr := reader.NewRecordReader(goalPersistence.NewGoalRepository(db), logs, projectPersistence.NewProjectRepository(db))
	engine := pipeline.NewEngine(nil, nil, 0)

	h := NewAIHandler(
		service.NewGenerationService(engine, logs, userPersistence.NewUserProfileRepository(db), skills),
		service.NewSkillService(engine, rr, skills),
		service.NewInsightService(engine, rr, persistence.NewInsightRepository(db)),
		service.NewCopilotService(nil, rr, chatPersistence.NewChatRepository(db)),
	)
	r := testutil.Router()
	h.Register(&r.RouterGroup)
	return r
}

func TestSuggestTags_NoCredential(t *testing.T) {
	r := newDemoRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/ai/suggest-tags", "u1", map[string]string{
		"title": "DB timeout", "description": "Queries exceeded 30s", "system": "Backend",
	})
	env := testutil.Decode(t, w, nil)
	if w.Code != http.StatusInternalServerError || env.Error != "Configuration error" || env.Kind != xerr.KindConfiguration {
		t.Fatalf("suggest-tags: got=%d %q/%s want=500 \"Configuration error\"", w.Code, env.Error, env.Kind)
	}
}

func TestSmartGoals_DemoIsDeterministic(t *testing.T) {
	r := newDemoRouter(t)
	body := map[string]string{"goal": "Learn PLC programming", "category": "technical", "deadline": "2026-12-31"}

	var first, second map[string]any
	w := testutil.Do(t, r, http.MethodPost, "/ai/smart-goals", "u1", body)
	env := testutil.Decode(t, w, &first)
	if w.Code != http.StatusOK || env.Mode != pipeline.ModeDemo {
		t.Fatalf("smart-goals: got=%d mode=%s want=200 mode=demo", w.Code, env.Mode)
	}
	w = testutil.Do(t, r, http.MethodPost, "/ai/smart-goals", "u1", body)
	testutil.Decode(t, w, &second)
	if first["specific"] == nil || first["specific"] != second["specific"] || first["refined_title"] != second["refined_title"] {
		t.Fatalf("demo output differs: %v vs %v", first, second)
	}
}

func TestSmartGoals_MissingGoal(t *testing.T) {
	r := newDemoRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/ai/smart-goals", "u1", map[string]string{"goal": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank goal: got=%d want=400", w.Code)
	}
}

func TestCopilot_NoCredential(t *testing.T) {
	r := newDemoRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/ai/copilot", "u1", map[string]any{"question": "What failed last week?"})
	env := testutil.Decode(t, w, nil)
	if w.Code != http.StatusServiceUnavailable || env.Kind != xerr.KindServiceUnavailable {
		t.Fatalf("copilot: got=%d/%s want=503/%s", w.Code, env.Kind, xerr.KindServiceUnavailable)
	}
}

func TestInsights_GenerateThenList(t *testing.T) {
	r := newDemoRouter(t)
	var generated []map[string]any
	w := testutil.Do(t, r, http.MethodPost, "/insights/generate", "u1", nil)
	env := testutil.Decode(t, w, &generated)
	if w.Code != http.StatusOK || env.Mode != pipeline.ModeDemo || len(generated) == 0 {
		t.Fatalf("generate: got=%d mode=%s n=%d", w.Code, env.Mode, len(generated))
	}

	var listed []map[string]any
	w = testutil.Do(t, r, http.MethodGet, "/insights", "u1", nil)
	testutil.Decode(t, w, &listed)
	if len(listed) != len(generated) {
		t.Fatalf("list: got=%d want=%d", len(listed), len(generated))
	}

	w = testutil.Do(t, r, http.MethodGet, "/insights", "u2", nil)
	listed = nil
	testutil.Decode(t, w, &listed)
	if len(listed) != 0 {
		t.Fatalf("other user sees insights: got=%d", len(listed))
	}
}

func TestAnalyzeSkills_NoRecords(t *testing.T) {
	r := newDemoRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/ai/analyze-skills", "u1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("analyze without records: got=%d want=400", w.Code)
	}
}
