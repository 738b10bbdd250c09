package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/tidydo/api/transport"
	"github.com/fastygo/tidydo/domain"
	"github.com/fastygo/tidydo/repository/memory"
	"github.com/fastygo/tidydo/repository/records"
	"github.com/fastygo/tidydo/usecase"
	"github.com/fastygo/tidydo/usecase/app"
	categoryUC "github.com/fastygo/tidydo/usecase/category"
	itemUC "github.com/fastygo/tidydo/usecase/item"
	settingsUC "github.com/fastygo/tidydo/usecase/settings"
)

type fixture struct {
	categories *CategoryHandler
	items      *ItemHandler
	view       *ViewHandler
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv := memory.New()
	categoryRepo := records.NewCategoryRepository(kv)
	itemRepo := records.NewItemRepository(kv)
	simpleRepo := records.NewSimpleItemRepository(kv)
	settings := settingsUC.New(records.NewDocumentRepository(kv, domain.KeyAppConfig), nil, nil)

	state := app.New(app.Deps{
		Categories:  categoryRepo,
		Items:       itemRepo,
		SimpleItems: simpleRepo,
		Config:      settings,
		BackupDelay: -1,
	})
	if err := state.Initialize(context.Background(), false); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	items := itemUC.New(itemRepo, categoryRepo, settings, state, nil)
	return fixture{
		categories: NewCategoryHandler(categoryUC.New(categoryRepo, itemRepo, simpleRepo, state, nil), items, nil, nil),
		items:      NewItemHandler(items, nil, nil),
		view:       NewViewHandler(state, nil, nil),
	}
}

type response struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
	Meta   json.RawMessage `json:"meta"`
}

func call(t *testing.T, h fasthttp.RequestHandler, id string, body interface{}) (int, response) {
	t.Helper()
	var rc fasthttp.RequestCtx
	if id != "" {
		rc.SetUserValue("id", id)
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rc.Request.SetBody(raw)
	}
	h(&rc)

	var resp response
	if len(rc.Response.Body()) > 0 {
		if err := json.Unmarshal(rc.Response.Body(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", rc.Response.Body(), err)
		}
	}
	return rc.Response.StatusCode(), resp
}

func TestItemLifecycleOverHTTP(t *testing.T) {
	f := newFixture(t)

	status, resp := call(t, f.categories.List, "", nil)
	if status != http.StatusOK {
		t.Fatalf("list categories status = %d", status)
	}
	var categories []domain.Category
	if err := json.Unmarshal(resp.Data, &categories); err != nil || len(categories) != 1 {
		t.Fatalf("categories = %s (%v)", resp.Data, err)
	}
	inbox := categories[0].ID

	status, resp = call(t, f.items.Create, "", itemUC.CreateInput{CategoryID: inbox, Title: "write report"})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", status, resp.Error)
	}
	var created domain.Item
	_ = json.Unmarshal(resp.Data, &created)

	archived := true
	if status, _ = call(t, f.items.Archive, created.ID, transport.ArchiveRequest{Archived: &archived}); status != http.StatusOK {
		t.Fatalf("archive status = %d", status)
	}
	title := "rename"
	status, resp = call(t, f.items.Update, created.ID, itemUC.Patch{Title: &title})
	if status != http.StatusConflict || resp.Code != string(domain.ErrCodeBusiness) {
		t.Fatalf("update archived = %d %+v", status, resp)
	}
	if status, _ = call(t, f.items.UpdateStatus, created.ID, transport.StatusRequest{Status: "in_progress"}); status != http.StatusOK {
		t.Fatalf("status change on archived item = %d", status)
	}

	if status, _ = call(t, f.items.Get, "missing", nil); status != http.StatusNotFound {
		t.Fatalf("missing item status = %d", status)
	}

	status, resp = call(t, f.view.Current, "", nil)
	if status != http.StatusOK {
		t.Fatalf("view status = %d", status)
	}
	var current struct {
		Items []domain.Item `json:"items"`
	}
	_ = json.Unmarshal(resp.Data, &current)
	if len(current.Items) != 0 {
		t.Fatalf("archived item visible by default: %+v", current.Items)
	}
	status, resp = call(t, f.view.Patch, "", transport.ViewPatchRequest{ToggleShowArchived: true})
	_ = json.Unmarshal(resp.Data, &current)
	if status != http.StatusOK || len(current.Items) != 1 || current.Items[0].Status != domain.StatusInProgress {
		t.Fatalf("view with archived = %d %+v", status, current.Items)
	}
}

func TestCategoryReorderValidation(t *testing.T) {
	f := newFixture(t)
	if status, _ := call(t, f.categories.Create, "", categoryUC.CreateInput{Name: "Work"}); status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	_, resp := call(t, f.categories.List, "", nil)
	var categories []domain.Category
	_ = json.Unmarshal(resp.Data, &categories)

	if status, _ := call(t, f.categories.Reorder, categories[1].ID, transport.ReorderRequest{}); status != http.StatusBadRequest {
		t.Fatalf("reorder without index = %d", status)
	}
	zero := 0
	status, resp := call(t, f.categories.Reorder, categories[1].ID, transport.ReorderRequest{TargetIndex: &zero})
	if status != http.StatusOK {
		t.Fatalf("reorder status = %d", status)
	}
	var reordered []domain.Category
	_ = json.Unmarshal(resp.Data, &reordered)
	if reordered[0].Name != "Work" {
		t.Fatalf("order after drag = %s, %s", reordered[0].Name, reordered[1].Name)
	}
	if status, _ := call(t, f.categories.Move, categories[1].ID, transport.MoveRequest{Direction: "sideways"}); status != http.StatusBadRequest {
		t.Fatalf("bad direction status = %d", status)
	}

	var rc fasthttp.RequestCtx
	rc.Request.SetBody([]byte("{"))
	f.categories.Create(&rc)
	if rc.Response.StatusCode() != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d", rc.Response.StatusCode())
	}
}

func TestMapError(t *testing.T) {
	wrappedNotFound := usecase.Wrap(nil, "load", domain.ErrCodeBusiness, domain.ErrItemNotFound)
	cases := []struct {
		err    error
		status int
	}{
		{domain.NewError(domain.ErrCodeValidation, "bad"), http.StatusBadRequest},
		{wrappedNotFound, http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.NewError(domain.ErrCodeStorage, "disk"), http.StatusServiceUnavailable},
		{domain.NewError(domain.ErrCodeBusiness, "rule"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if status, _ := mapError(tc.err); status != tc.status {
			t.Errorf("mapError(%v) = %d, want %d", tc.err, status, tc.status)
		}
	}
}
