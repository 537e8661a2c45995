package docgate

import (
	"context"

	domanalytics "github.com/kailas-cloud/docgate/internal/domain/analytics"
	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
	documentuc "github.com/kailas-cloud/docgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docgate/internal/usecase/index"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	createFn func(ctx context.Context, doc *domdoc.Document) (documentuc.Created, error)
	getFn    func(ctx context.Context, id string) (domdoc.Document, error)
	updateFn func(ctx context.Context, doc *domdoc.Document) (domdoc.Document, error)
	deleteFn func(ctx context.Context, id string) (int, error)
	clearFn  func(ctx context.Context, confirm string) (int64, error)
}

func (m *mockDocumentUC) Create(ctx context.Context, doc *domdoc.Document) (documentuc.Created, error) {
	return m.createFn(ctx, doc)
}

func (m *mockDocumentUC) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFn(ctx, id)
}

func (m *mockDocumentUC) Update(ctx context.Context, doc *domdoc.Document) (domdoc.Document, error) {
	return m.updateFn(ctx, doc)
}

func (m *mockDocumentUC) Delete(ctx context.Context, id string) (int, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockDocumentUC) ClearAll(ctx context.Context, confirm string) (int64, error) {
	return m.clearFn(ctx, confirm)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req query.Request) (result.Result, error)
	feesFn   func(ctx context.Context, q string, from, size *int) (result.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req query.Request) (result.Result, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) SearchFees(ctx context.Context, q string, from, size *int) (result.Result, error) {
	return m.feesFn(ctx, q, from, size)
}

// --- bulkUseCase mock ---

type mockBulkUC struct {
	loadFn func(ctx context.Context, docs []domdoc.Document) (dombatch.Report, error)
	seedFn func(ctx context.Context) (dombatch.Report, error)
}

func (m *mockBulkUC) Load(ctx context.Context, docs []domdoc.Document) (dombatch.Report, error) {
	return m.loadFn(ctx, docs)
}

func (m *mockBulkUC) LoadSeed(ctx context.Context) (dombatch.Report, error) {
	return m.seedFn(ctx)
}

// --- analyticsUseCase mock ---

type mockAnalyticsUC struct {
	dashboardFn func(ctx context.Context) (domanalytics.Dashboard, error)
}

func (m *mockAnalyticsUC) Dashboard(ctx context.Context) (domanalytics.Dashboard, error) {
	return m.dashboardFn(ctx)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	ensureFn  func(ctx context.Context, name string, desc mapping.Descriptor) (indexuc.Status, error)
	mappingFn func(ctx context.Context, name string) (mapping.Descriptor, error)
	updateFn  func(ctx context.Context, name string, desc mapping.Descriptor) error
	deleteFn  func(ctx context.Context, name, confirm string) error
}

func (m *mockIndexUC) Ensure(ctx context.Context, name string, desc mapping.Descriptor) (indexuc.Status, error) {
	return m.ensureFn(ctx, name, desc)
}

func (m *mockIndexUC) Mapping(ctx context.Context, name string) (mapping.Descriptor, error) {
	return m.mappingFn(ctx, name)
}

func (m *mockIndexUC) UpdateMapping(ctx context.Context, name string, desc mapping.Descriptor) error {
	return m.updateFn(ctx, name, desc)
}

func (m *mockIndexUC) Delete(ctx context.Context, name, confirm string) error {
	return m.deleteFn(ctx, name, confirm)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
