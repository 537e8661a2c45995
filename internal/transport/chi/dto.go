package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"

	dombatch "github.com/kailas-cloud/docgate/internal/domain/batch"
	domdoc "github.com/kailas-cloud/docgate/internal/domain/document"
	"github.com/kailas-cloud/docgate/internal/domain/mapping"
	"github.com/kailas-cloud/docgate/internal/domain/search/mode"
	"github.com/kailas-cloud/docgate/internal/domain/search/query"
	"github.com/kailas-cloud/docgate/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/docgate/internal/usecase/health"
)

// LegacyCreateIndexShards is the shard count of GET /api/v1/create_index.
const LegacyCreateIndexShards = 4

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks struct tags and renders failures as one message.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s=%s'", field, e.Tag(), e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// decodeJSON reads a size-capped JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// readBody reads a size-capped raw body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return data, nil
}

// --- query parameters ---

type visaFeesParams struct {
	Q    *string
	Skip *int
	Size *int
}

func bindVisaFeesParams(r *http.Request) (visaFeesParams, error) {
	var p visaFeesParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &p.Q); err != nil {
		return p, fmt.Errorf("invalid q: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "skip", q, &p.Skip); err != nil {
		return p, fmt.Errorf("invalid skip: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", q, &p.Size); err != nil {
		return p, fmt.Errorf("invalid size: %w", err)
	}
	return p, nil
}

type createIndexParams struct {
	IndexName string
	Shards    *int
}

func bindCreateIndexParams(r *http.Request) (createIndexParams, error) {
	var p createIndexParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "index_name", q, &p.IndexName); err != nil {
		return p, fmt.Errorf("invalid index_name: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "shards", q, &p.Shards); err != nil {
		return p, fmt.Errorf("invalid shards: %w", err)
	}
	return p, nil
}

func bindConfirm(r *http.Request) (string, error) {
	var confirm string
	if err := runtime.BindQueryParameter("form", true, true, "confirm", r.URL.Query(), &confirm); err != nil {
		return "", fmt.Errorf("invalid confirm: %w", err)
	}
	return confirm, nil
}

// --- requests ---

type documentRequest struct {
	ID   string          `json:"id" validate:"omitempty,max=512"`
	Body json.RawMessage `json:"body" validate:"required"`
}

func (d documentRequest) toDomain() (domdoc.Document, error) {
	doc, err := domdoc.FromJSON(d.ID, d.Body)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document body: %w", err)
	}
	return doc, nil
}

type searchRequest struct {
	Intent string   `json:"intent" validate:"omitempty,oneof=match_all exact multi_match"`
	Query  string   `json:"query"`
	Field  string   `json:"field"`
	Fields []string `json:"fields" validate:"omitempty,dive,required"`
	From   *int     `json:"from" validate:"omitempty,gte=0"`
	Size   *int     `json:"size" validate:"omitempty,gte=0"`
}

func (s searchRequest) toDomain() query.Request {
	return query.Request{
		Mode:   mode.Mode(s.Intent),
		Query:  s.Query,
		Field:  s.Field,
		Fields: s.Fields,
		From:   s.From,
		Size:   s.Size,
	}
}

type subFieldDTO struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	IgnoreAbove int    `json:"ignore_above,omitempty" validate:"gte=0"`
}

type fieldDTO struct {
	Name       string        `json:"name" validate:"required"`
	Type       string        `json:"type" validate:"required"`
	Keyword    bool          `json:"keyword,omitempty"`
	SubFields  []subFieldDTO `json:"sub_fields,omitempty" validate:"omitempty,dive"`
	Properties []fieldDTO    `json:"properties,omitempty" validate:"omitempty,dive"`
}

type createIndexRequest struct {
	Name    string     `json:"name" validate:"required,max=255"`
	Shards  int        `json:"shards" validate:"gte=0"`
	Mapping []fieldDTO `json:"mapping" validate:"omitempty,dive"`
}

type updateMappingRequest struct {
	Fields []fieldDTO `json:"fields" validate:"required,min=1,dive"`
}

func fieldsToDomain(in []fieldDTO) []mapping.Field {
	if len(in) == 0 {
		return nil
	}
	out := make([]mapping.Field, len(in))
	for i, f := range in {
		mf := mapping.Field{Name: f.Name, Type: mapping.Type(f.Type)}
		if f.Keyword {
			mf.SubFields = append(mf.SubFields, mapping.TextWithKeyword(f.Name).SubFields...)
		}
		for _, s := range f.SubFields {
			mf.SubFields = append(mf.SubFields, mapping.SubField{
				Name: s.Name, Type: mapping.Type(s.Type), IgnoreAbove: s.IgnoreAbove,
			})
		}
		mf.Properties = fieldsToDomain(f.Properties)
		out[i] = mf
	}
	return out
}

func fieldsFromDomain(in []mapping.Field) []fieldDTO {
	out := make([]fieldDTO, len(in))
	for i, f := range in {
		dto := fieldDTO{Name: f.Name, Type: string(f.Type)}
		for _, s := range f.SubFields {
			dto.SubFields = append(dto.SubFields, subFieldDTO{
				Name: s.Name, Type: string(s.Type), IgnoreAbove: s.IgnoreAbove,
			})
		}
		if len(f.Properties) > 0 {
			dto.Properties = fieldsFromDomain(f.Properties)
		}
		out[i] = dto
	}
	return out
}

// --- responses ---

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

type versionDTO struct {
	SeqNo       int64 `json:"seq_no"`
	PrimaryTerm int64 `json:"primary_term"`
}

type documentResponse struct {
	ID      string          `json:"id"`
	Version *versionDTO     `json:"version,omitempty"`
	Body    domdoc.Document `json:"body"`
}

func documentToDTO(doc *domdoc.Document) documentResponse {
	resp := documentResponse{ID: doc.ID(), Body: *doc}
	if v := doc.Version(); v.Known() {
		resp.Version = &versionDTO{SeqNo: v.SeqNo, PrimaryTerm: v.PrimaryTerm}
	}
	return resp
}

type createdResponse struct {
	ID     string `json:"id"`
	Result string `json:"result"`
}

type hitDTO struct {
	ID     string          `json:"id"`
	Index  string          `json:"index"`
	Score  *float64        `json:"score"`
	Source domdoc.Document `json:"source"`
}

type searchResponse struct {
	Total int64    `json:"total"`
	Hits  []hitDTO `json:"hits"`
}

func searchToDTO(res *result.Result) searchResponse {
	hits := res.Hits()
	out := make([]hitDTO, len(hits))
	for i := range hits {
		h := &hits[i]
		out[i] = hitDTO{ID: h.ID(), Index: h.Index(), Score: h.Score(), Source: h.Document()}
	}
	return searchResponse{Total: res.Total(), Hits: out}
}

type visaFeesResponse struct {
	Page  int      `json:"page"`
	Total int64    `json:"total"`
	Items []hitDTO `json:"items"`
}

type bulkItemDTO struct {
	Position   int    `json:"position"`
	ID         string `json:"id"`
	Status     string `json:"status"`
	HTTPStatus int    `json:"http_status"`
	ErrorType  string `json:"error_type,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type bulkResponse struct {
	Took      int64         `json:"took"`
	Errors    bool          `json:"errors"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Items     []bulkItemDTO `json:"items"`
}

func bulkToDTO(r dombatch.Report) bulkResponse {
	items := make([]bulkItemDTO, len(r.Items()))
	for i, it := range r.Items() {
		items[i] = bulkItemDTO{
			Position:   it.Position(),
			ID:         it.ID(),
			Status:     string(it.Status()),
			HTTPStatus: it.HTTPStatus(),
			ErrorType:  it.ErrorType(),
			Reason:     it.Reason(),
		}
	}
	return bulkResponse{
		Took:      r.Took(),
		Errors:    r.Errors(),
		Succeeded: r.Succeeded(),
		Failed:    len(r.Failed()),
		Items:     items,
	}
}

type indexStatusResponse struct {
	Index  string `json:"index"`
	Status string `json:"status"`
	Shards int    `json:"shards,omitempty"`
}

type mappingResponse struct {
	Index  string     `json:"index"`
	Fields []fieldDTO `json:"fields"`
}
