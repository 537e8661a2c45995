package docgate

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docgate/internal/domain/mapping"
)

// IndexService manages index lifecycle and mappings.
type IndexService struct {
	svc indexUseCase
	obs *observer
}

// Ensure creates the index unless it already exists.
func (s *IndexService) Ensure(ctx context.Context, name string, spec IndexSpec) (st EnsureStatus, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index_ensure", start, err) }()

	status, err := s.svc.Ensure(ctx, name, toInternalDescriptor(spec))
	if err != nil {
		return "", fmt.Errorf("ensure index: %w", err)
	}
	return EnsureStatus(status), nil
}

// Mapping returns the current field mapping.
func (s *IndexService) Mapping(ctx context.Context, name string) (fields []FieldSpec, err error) {
	start := time.Now()
	defer func() { s.obs.observe("index_mapping", start, err) }()

	desc, err := s.svc.Mapping(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get mapping: %w", err)
	}
	return fromInternalFields(desc.Fields), nil
}

// AddFields applies an additive mapping change.
func (s *IndexService) AddFields(ctx context.Context, name string, fields ...FieldSpec) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("index_update_mapping", start, err) }()

	if err := s.svc.UpdateMapping(ctx, name, mapping.Descriptor{Fields: toInternalFields(fields)}); err != nil {
		return fmt.Errorf("update mapping: %w", err)
	}
	return nil
}

// Delete removes the index. confirm must repeat the index name.
func (s *IndexService) Delete(ctx context.Context, name, confirm string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("index_delete", start, err) }()

	if err := s.svc.Delete(ctx, name, confirm); err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	return nil
}

func toInternalDescriptor(spec IndexSpec) mapping.Descriptor {
	return mapping.Descriptor{Shards: spec.Shards, Fields: toInternalFields(spec.Fields)}
}

func toInternalFields(in []FieldSpec) []mapping.Field {
	if len(in) == 0 {
		return nil
	}
	out := make([]mapping.Field, len(in))
	for i, f := range in {
		mf := mapping.Field{Name: f.Name, Type: mapping.Type(f.Type)}
		if f.Keyword {
			mf.SubFields = mapping.TextWithKeyword(f.Name).SubFields
		}
		mf.Properties = toInternalFields(f.Properties)
		out[i] = mf
	}
	return out
}

func fromInternalFields(in []mapping.Field) []FieldSpec {
	out := make([]FieldSpec, len(in))
	for i, f := range in {
		spec := FieldSpec{Name: f.Name, Type: FieldType(f.Type)}
		for _, sf := range f.SubFields {
			if sf.Type == mapping.Keyword {
				spec.Keyword = true
			}
		}
		if len(f.Properties) > 0 {
			spec.Properties = fromInternalFields(f.Properties)
		}
		out[i] = spec
	}
	return out
}
