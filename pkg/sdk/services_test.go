package docgate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kailas-cloud/docgate/internal/domain"
	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/domain/search/mode"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
	documentuc "github.com/kailas-cloud/docgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docgate/internal/usecase/index"
)

func mustDoc(t *testing.T, id, body string) domdoc.Document {
	t.Helper()
	d, err := domdoc.FromJSON(id, []byte(body))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	return d
}

// --- DocumentService ---

func TestDocumentService_Create(t *testing.T) {
	mock := &mockDocumentUC{
		createFn: func(_ context.Context, doc *domdoc.Document) (documentuc.Created, error) {
			if v, ok := doc.Get("name"); !ok || v.Text() != "Visa" {
				t.Errorf("name = %v", v)
			}
			return documentuc.Created{ID: "gen-1", Result: documentuc.ResultCreated}, nil
		},
	}

	svc := &DocumentService{svc: mock}
	id, err := svc.Create(context.Background(), Document{Body: json.RawMessage(`{"name":"Visa"}`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "gen-1" {
		t.Errorf("id = %q, want gen-1", id)
	}
}

func TestDocumentService_Create_InvalidBody(t *testing.T) {
	svc := &DocumentService{svc: &mockDocumentUC{}}
	_, err := svc.Create(context.Background(), Document{Body: json.RawMessage(`[1,2]`)})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestDocumentService_Get(t *testing.T) {
	stored := mustDoc(t, "a", `{"name":"Visa","fee":2}`)
	stored = stored.WithVersion(domdoc.Version{SeqNo: 4, PrimaryTerm: 1})
	mock := &mockDocumentUC{
		getFn: func(_ context.Context, id string) (domdoc.Document, error) {
			return stored, nil
		},
	}

	doc, err := (&DocumentService{svc: mock}).Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "a" || doc.SeqNo != 4 || doc.PrimaryTerm != 1 {
		t.Errorf("doc = %+v", doc)
	}
	if string(doc.Body) != `{"name":"Visa","fee":2}` {
		t.Errorf("body = %s", doc.Body)
	}
}

func TestDocumentService_Get_NotFound(t *testing.T) {
	mock := &mockDocumentUC{
		getFn: func(context.Context, string) (domdoc.Document, error) {
			return domdoc.Document{}, domain.ErrNotFound
		},
	}
	_, err := (&DocumentService{svc: mock}).Get(context.Background(), "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDocumentService_Update(t *testing.T) {
	mock := &mockDocumentUC{
		updateFn: func(_ context.Context, doc *domdoc.Document) (domdoc.Document, error) {
			return doc.WithVersion(domdoc.Version{SeqNo: 9, PrimaryTerm: 2}), nil
		},
	}
	doc, err := (&DocumentService{svc: mock}).Update(context.Background(),
		Document{ID: "a", Body: json.RawMessage(`{"x":1}`)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.SeqNo != 9 || doc.PrimaryTerm != 2 {
		t.Errorf("version = %d/%d", doc.SeqNo, doc.PrimaryTerm)
	}
}

func TestDocumentService_Delete(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{{1, true}, {0, false}}
	for _, tt := range tests {
		mock := &mockDocumentUC{
			deleteFn: func(context.Context, string) (int, error) { return tt.n, nil },
		}
		got, err := (&DocumentService{svc: mock}).Delete(context.Background(), "a")
		if err != nil || got != tt.want {
			t.Errorf("n=%d: got %v, %v", tt.n, got, err)
		}
	}
}

func TestDocumentService_ClearAll(t *testing.T) {
	mock := &mockDocumentUC{
		clearFn: func(_ context.Context, confirm string) (int64, error) {
			if confirm != "fees" {
				return 0, domain.ErrInvalidArgument
			}
			return 12, nil
		},
	}
	svc := &DocumentService{svc: mock}

	if _, err := svc.ClearAll(context.Background(), "other"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	n, err := svc.ClearAll(context.Background(), "fees")
	if err != nil || n != 12 {
		t.Errorf("got %d, %v", n, err)
	}
}

// --- SearchService ---

func TestSearchService_Query(t *testing.T) {
	score := 2.5
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, req query.Request) (result.Result, error) {
			if req.Mode != mode.Exact || req.Query != "Visa" {
				t.Errorf("req = %+v", req)
			}
			return result.New(1, []result.Hit{
				result.NewHit("a", "fees", &score, mustDoc(t, "a", `{"name":"Visa"}`)),
			}), nil
		},
	}

	res, err := (&SearchService{svc: mock}).Query(context.Background(),
		SearchRequest{Intent: IntentExact, Query: "Visa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 1 || len(res.Hits) != 1 {
		t.Fatalf("res = %+v", res)
	}
	h := res.Hits[0]
	if h.ID != "a" || h.Index != "fees" || *h.Score != 2.5 || string(h.Source) != `{"name":"Visa"}` {
		t.Errorf("hit = %+v", h)
	}
}

func TestSearchService_Fees(t *testing.T) {
	var gotFrom, gotSize *int
	mock := &mockSearchUC{
		feesFn: func(_ context.Context, _ string, from, size *int) (result.Result, error) {
			gotFrom, gotSize = from, size
			return result.New(0, nil), nil
		},
	}
	from, size := 10, 5
	res, err := (&SearchService{svc: mock}).Fees(context.Background(), "", &from, &size)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *gotFrom != 10 || *gotSize != 5 {
		t.Errorf("paging = %d/%d", *gotFrom, *gotSize)
	}
	if len(res.Hits) != 0 {
		t.Errorf("hits = %v", res.Hits)
	}
}

// --- BulkService ---

func TestBulkService_Load(t *testing.T) {
	mock := &mockBulkUC{
		loadFn: func(_ context.Context, docs []domdoc.Document) (dombatch.Report, error) {
			if len(docs) != 2 {
				t.Errorf("docs = %d", len(docs))
			}
			return dombatch.NewReport(3, true, []dombatch.Result{
				dombatch.NewOK(0, "a", 201),
				dombatch.NewError(1, "b", 400, "mapper_parsing_exception", "bad fee"),
			}), nil
		},
	}

	rep, err := (&BulkService{svc: mock}).Load(context.Background(), []Document{
		{ID: "a", Body: json.RawMessage(`{"fee":1}`)},
		{ID: "b", Body: json.RawMessage(`{"fee":"x"}`)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.Errors || rep.Took != 3 {
		t.Errorf("rep = %+v", rep)
	}
	failed := rep.Failed()
	if len(failed) != 1 || failed[0].Position != 1 || failed[0].ErrorType != "mapper_parsing_exception" {
		t.Errorf("failed = %+v", failed)
	}
}

func TestBulkService_Load_InvalidItem(t *testing.T) {
	svc := &BulkService{svc: &mockBulkUC{}}
	_, err := svc.Load(context.Background(), []Document{{Body: json.RawMessage(`"x"`)}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestBulkService_LoadSeed_Error(t *testing.T) {
	mock := &mockBulkUC{
		seedFn: func(context.Context) (dombatch.Report, error) {
			return dombatch.Report{}, domain.ErrConnection
		},
	}
	if _, err := (&BulkService{svc: mock}).LoadSeed(context.Background()); !errors.Is(err, ErrConnection) {
		t.Errorf("err = %v, want ErrConnection", err)
	}
}

// --- AnalyticsService ---

func TestAnalyticsService_Dashboard(t *testing.T) {
	mock := &mockAnalyticsUC{
		dashboardFn: func(context.Context) (domanalytics.Dashboard, error) {
			d := domanalytics.Empty()
			d.TopEntities = []domanalytics.Bucket{{Key: "Visa", Count: 7}}
			d.AmountStats = domanalytics.Stats{Count: 7, Min: 1, Max: 9, Avg: 4, Sum: 28}
			return d, nil
		},
	}

	dash, err := (&AnalyticsService{svc: mock}).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dash.TopEntities) != 1 || dash.TopEntities[0].Count != 7 {
		t.Errorf("top = %+v", dash.TopEntities)
	}
	if dash.AmountStats.Sum != 28 {
		t.Errorf("stats = %+v", dash.AmountStats)
	}
	if dash.Categories == nil {
		t.Error("categories is nil, want empty slice")
	}
}

// --- IndexService ---

func TestIndexService_Ensure(t *testing.T) {
	mock := &mockIndexUC{
		ensureFn: func(_ context.Context, name string, desc mapping.Descriptor) (indexuc.Status, error) {
			if name != "fees" || desc.Shards != 2 {
				t.Errorf("name=%q shards=%d", name, desc.Shards)
			}
			if len(desc.Fields) != 1 || len(desc.Fields[0].SubFields) != 1 {
				t.Errorf("fields = %+v", desc.Fields)
			}
			return indexuc.StatusAlreadyExists, nil
		},
	}

	st, err := (&IndexService{svc: mock}).Ensure(context.Background(), "fees", IndexSpec{
		Shards: 2,
		Fields: []FieldSpec{{Name: "name", Type: FieldText, Keyword: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st != EnsureAlreadyExists {
		t.Errorf("status = %q", st)
	}
}

func TestIndexService_Mapping(t *testing.T) {
	mock := &mockIndexUC{
		mappingFn: func(context.Context, string) (mapping.Descriptor, error) {
			return mapping.Descriptor{Fields: []mapping.Field{
				mapping.TextWithKeyword("name"),
				{Name: "meta", Type: mapping.Object, Properties: []mapping.Field{{Name: "src", Type: mapping.Keyword}}},
			}}, nil
		},
	}

	fields, err := (&IndexService{svc: mock}).Mapping(context.Background(), "fees")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 || !fields[0].Keyword || len(fields[1].Properties) != 1 {
		t.Errorf("fields = %+v", fields)
	}
}

func TestIndexService_AddFieldsAndDelete(t *testing.T) {
	var added []mapping.Field
	mock := &mockIndexUC{
		updateFn: func(_ context.Context, _ string, desc mapping.Descriptor) error {
			added = desc.Fields
			return nil
		},
		deleteFn: func(_ context.Context, name, confirm string) error {
			if name != confirm {
				return domain.ErrInvalidArgument
			}
			return nil
		},
	}
	svc := &IndexService{svc: mock}

	if err := svc.AddFields(context.Background(), "fees", FieldSpec{Name: "category", Type: FieldKeyword}); err != nil {
		t.Fatalf("AddFields: %v", err)
	}
	if len(added) != 1 || added[0].Type != mapping.Keyword {
		t.Errorf("added = %+v", added)
	}
	if err := svc.Delete(context.Background(), "fees", "nope"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

// --- Health ---

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{
			healthuc.CheckEngine:     healthuc.CheckOK,
			healthuc.CheckConnection: healthuc.CheckError,
		},
	}}}

	h := c.Health(context.Background())
	if h.State != HealthDegraded || h.OK() {
		t.Errorf("state = %q", h.State)
	}
	if !h.Checks[CheckEngine] || h.Checks[CheckConnection] {
		t.Errorf("checks = %v", h.Checks)
	}
}
