package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	logpkg "github.com/kailas-cloud/docgate/internal/logger"
	indexuc "github.com/kailas-cloud/docgate/internal/usecase/index"
)

// --- indexes ---

// CreateIndexLegacy handles GET /api/v1/create_index.
func (s *Server) CreateIndexLegacy(w http.ResponseWriter, r *http.Request) {
	params, err := bindCreateIndexParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	shards := LegacyCreateIndexShards
	if params.Shards != nil {
		shards = *params.Shards
	}
	s.ensureIndex(w, r, params.IndexName, mapping.Descriptor{Shards: shards})
}

// CreateIndex handles POST /api/v1/indexes.
func (s *Server) CreateIndex(w http.ResponseWriter, r *http.Request) {
	var req createIndexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}
	s.ensureIndex(w, r, req.Name, mapping.Descriptor{
		Shards: req.Shards,
		Fields: fieldsToDomain(req.Mapping),
	})
}

func (s *Server) ensureIndex(w http.ResponseWriter, r *http.Request, name string, desc mapping.Descriptor) {
	status, err := s.indexes.Ensure(r.Context(), name, desc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	httpStatus := http.StatusCreated
	if status != indexuc.StatusCreated {
		httpStatus = http.StatusOK
	}
	writeSuccess(w, httpStatus, "", indexStatusResponse{
		Index:  name,
		Status: string(status),
		Shards: desc.Shards,
	})
}

// GetMapping handles GET /api/v1/indexes/{index}/mapping.
func (s *Server) GetMapping(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")
	desc, err := s.indexes.Mapping(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", mappingResponse{Index: name, Fields: fieldsFromDomain(desc.Fields)})
}

// UpdateMapping handles PUT /api/v1/indexes/{index}/mapping.
func (s *Server) UpdateMapping(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "index")

	var req updateMappingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}

	desc := mapping.Descriptor{Fields: fieldsToDomain(req.Fields)}
	if err := s.indexes.UpdateMapping(r.Context(), name, desc); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "mapping updated", mappingResponse{Index: name, Fields: req.Fields})
}

// ValidateDocument handles POST /api/v1/indexes/{index}/validate. The body
// is the raw document.
func (s *Server) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	doc, err := domdoc.FromJSON("", body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}
	if err := s.indexes.Validate(r.Context(), chi.URLParam(r, "index"), doc); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "document matches mapping", nil)
}

// --- search ---

// VisaFees handles GET /api/v1/visa_fees.
func (s *Server) VisaFees(w http.ResponseWriter, r *http.Request) {
	params, err := bindVisaFeesParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	q := ""
	if params.Q != nil {
		q = *params.Q
	}

	res, err := s.search.SearchFees(r.Context(), q, params.Skip, params.Size)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	dto := searchToDTO(&res)
	writeSuccess(w, http.StatusOK, "", visaFeesResponse{
		Page:  pageNumber(params.Skip, params.Size),
		Total: dto.Total,
		Items: dto.Hits,
	})
}

// pageNumber is the 1-based page an offset falls on.
func pageNumber(skip, size *int) int {
	if skip == nil || size == nil || *size <= 0 || *skip <= 0 {
		return 1
	}
	return *skip / *size + 1
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), req.toDomain())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", searchToDTO(&res))
}

// --- documents ---

// CreateDocument handles POST /api/v1/documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}
	doc, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}

	created, err := s.documents.Create(r.Context(), &doc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "", createdResponse{ID: created.ID, Result: created.Result})
}

// GetDocument handles GET /api/v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", documentToDTO(&doc))
}

// UpdateDocument handles PUT /api/v1/documents/{id}. The body is the full
// replacement document.
func (s *Server) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	doc, err := domdoc.FromJSON(chi.URLParam(r, "id"), body)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}

	updated, err := s.documents.Update(r.Context(), &doc)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", documentToDTO(&updated))
}

// DeleteDocument handles DELETE /api/v1/documents/{id}. A missing document
// is not an error: the response reports zero deletions.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	n, err := s.documents.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]int{"deleted": n})
}

// --- bulk ---

// BulkLoad handles POST /api/v1/bulk.
func (s *Server) BulkLoad(w http.ResponseWriter, r *http.Request) {
	var items []documentRequest
	if err := decodeJSON(w, r, &items); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	docs := make([]domdoc.Document, len(items))
	for i, it := range items {
		if err := validateRequest(it); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, fmt.Sprintf("item %d: %v", i, err))
			return
		}
		doc, err := it.toDomain()
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, fmt.Sprintf("item %d: %v", i, err))
			return
		}
		docs[i] = doc
	}

	report, err := s.bulk.Load(r.Context(), docs)
	s.writeBulk(w, r, report, err)
}

// BulkSeed handles POST /api/v1/bulk/seed.
func (s *Server) BulkSeed(w http.ResponseWriter, r *http.Request) {
	report, err := s.bulk.LoadSeed(r.Context())
	s.writeBulk(w, r, report, err)
}

// writeBulk renders a bulk report. Item failures answer 207 with the full
// per-item detail.
func (s *Server) writeBulk(w http.ResponseWriter, r *http.Request, report dombatch.Report, err error) {
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	dto := bulkToDTO(report)
	if perr := report.Err(); perr != nil {
		logpkg.FromContextOr(r.Context(), s.logger).Warn("bulk partial failure",
			zap.Int("failed", dto.Failed),
			zap.Int("succeeded", dto.Succeeded),
		)
		writeJSON(w, http.StatusMultiStatus, envelope{
			Status:  statusError,
			Code:    codePartialFailure,
			Message: perr.Error(),
			Data:    dto,
		})
		return
	}
	writeSuccess(w, http.StatusOK, "", dto)
}

// --- analytics ---

// Dashboard handles GET /api/v1/analytics/dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.analytics.Dashboard(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", dash)
}

// Facet handles GET /api/v1/analytics/facets/{facet}.
func (s *Server) Facet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "facet")
	dash, err := s.analytics.Facet(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	// Re-key the single populated facet by its name.
	raw, err := json.Marshal(dash)
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("encode facet: %w", err))
		return
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("encode facet: %w", err))
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]json.RawMessage{name: all[name]})
}

// --- operator ---

// ClearDocuments handles DELETE /api/v1/operator/documents.
func (s *Server) ClearDocuments(w http.ResponseWriter, r *http.Request) {
	confirm, err := bindConfirm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	n, err := s.documents.ClearAll(r.Context(), confirm)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	logpkg.FromContextOr(r.Context(), s.logger).Warn("index cleared",
		zap.String("index", s.documents.Index()),
		zap.Int64("deleted", n),
	)
	writeSuccess(w, http.StatusOK, "", map[string]int64{"deleted": n})
}

// DeleteIndex handles DELETE /api/v1/operator/indexes/{index}.
func (s *Server) DeleteIndex(w http.ResponseWriter, r *http.Request) {
	confirm, err := bindConfirm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	name := chi.URLParam(r, "index")
	if err := s.indexes.Delete(r.Context(), name, confirm); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	logpkg.FromContextOr(r.Context(), s.logger).Warn("index deleted", zap.String("index", name))
	writeSuccess(w, http.StatusOK, "", indexStatusResponse{Index: name, Status: "deleted"})
}
