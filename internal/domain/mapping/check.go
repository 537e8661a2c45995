package mapping

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/docgate/internal/domain/document"
)

// CheckAdditive verifies that applying next over current only adds fields or
// sub-fields. The engine cannot change the type of an existing field in place.
func CheckAdditive(current, next Descriptor) error {
	return additive("", current.Fields, next.Fields)
}

func additive(prefix string, current, next []Field) error {
	for _, nf := range next {
		path := prefix + nf.Name
		cf, ok := find(current, nf.Name)
		if !ok {
			continue
		}
		if cf.Type != nf.Type {
			return fmt.Errorf("field %q: type change %s -> %s is not allowed", path, cf.Type, nf.Type)
		}
		for _, ns := range nf.SubFields {
			for _, cs := range cf.SubFields {
				if cs.Name == ns.Name && cs.Type != ns.Type {
					return fmt.Errorf("sub-field %s.%s: type change %s -> %s is not allowed",
						path, ns.Name, cs.Type, ns.Type)
				}
			}
		}
		if err := additive(path+".", cf.Properties, nf.Properties); err != nil {
			return err
		}
	}
	return nil
}

// Check validates a document against the mapping. Unmapped fields are
// accepted (dynamic mapping); nulls are always accepted.
func (d *Descriptor) Check(doc document.Document) error {
	return checkFields("", d.Fields, doc.Fields())
}

func checkFields(prefix string, mapped []Field, fields []document.Field) error {
	for _, df := range fields {
		mf, ok := find(mapped, df.Name)
		if !ok {
			continue
		}
		if err := checkValue(prefix+df.Name, mf, df.Value); err != nil {
			return err
		}
	}
	return nil
}

func checkValue(path string, f Field, v document.Value) error {
	if v.Kind() == document.KindNull {
		return nil
	}
	if v.Kind() == document.KindArray {
		for i, item := range v.Items() {
			if err := checkValue(fmt.Sprintf("%s[%d]", path, i), f, item); err != nil {
				return err
			}
		}
		return nil
	}

	switch {
	case f.Type == Text || f.Type == Keyword:
		if v.Kind() == document.KindObject {
			return mismatch(path, f.Type, v)
		}
	case f.Type.IsNumeric():
		switch v.Kind() {
		case document.KindNumber:
		case document.KindText:
			if _, err := strconv.ParseFloat(v.Text(), 64); err != nil {
				return mismatch(path, f.Type, v)
			}
		default:
			return mismatch(path, f.Type, v)
		}
	case f.Type == Date:
		if v.Kind() != document.KindDate && v.Kind() != document.KindNumber {
			return mismatch(path, f.Type, v)
		}
	case f.Type == Boolean:
		switch v.Kind() {
		case document.KindBool:
		case document.KindText:
			if v.Text() != "true" && v.Text() != "false" {
				return mismatch(path, f.Type, v)
			}
		default:
			return mismatch(path, f.Type, v)
		}
	case f.Type == Object || f.Type == Nested:
		if v.Kind() != document.KindObject {
			return mismatch(path, f.Type, v)
		}
		return checkFields(path+".", f.Properties, v.Fields())
	}
	return nil
}

func mismatch(path string, t Type, v document.Value) error {
	return fmt.Errorf("field %q: %s value is not valid for mapped type %s", path, v.Kind(), t)
}
