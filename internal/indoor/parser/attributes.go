package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ============================================================
// Attribute decoding
// ============================================================
//
// Absent attributes resolve to the given default. Present attributes must
// decode cleanly; a bad value aborts the parse.

var (
	errEnumRange = errors.New("ordinal out of range")
	errNonFinite = errors.New("number is not finite")
)

func rawAttr(el *etree.Element, name string) (string, bool) {
	attr := el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

func attrError(el *etree.Element, name, value string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &AttributeError{Element: el.Tag, Attribute: name, Value: value, Err: err}
}

func strAttr(el *etree.Element, name, def string) string {
	if v, ok := rawAttr(el, name); ok {
		return v
	}
	return def
}

// optFloatAttr reports whether the attribute is present.
func optFloatAttr(el *etree.Element, name string) (float64, bool, error) {
	v, ok := rawAttr(el, name)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, true, attrError(el, name, v, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, attrError(el, name, v, errNonFinite)
	}
	return f, true, nil
}

func floatAttr(el *etree.Element, name string, def float64) (float64, error) {
	f, ok, err := optFloatAttr(el, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return f, nil
}

func intAttr(el *etree.Element, name string, def int) (int, error) {
	v, ok := rawAttr(el, name)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, attrError(el, name, v, err)
	}
	return i, nil
}

func boolAttr(el *etree.Element, name string, def bool) (bool, error) {
	v, ok := rawAttr(el, name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, attrError(el, name, v, err)
	}
	return b, nil
}

type ordinal interface {
	~int
	Valid() bool
}

// enumAttr decodes an ordinal enumeration. Out-of-range ordinals are rejected.
func enumAttr[T ordinal](el *etree.Element, name string) (T, error) {
	i, err := intAttr(el, name, 0)
	if err != nil {
		return 0, err
	}
	v := T(i)
	if !v.Valid() {
		raw, _ := rawAttr(el, name)
		return 0, attrError(el, name, raw, errEnumRange)
	}
	return v, nil
}

// floatReader collects the first decoding error of a run of float reads so
// that long attribute lists stay readable.
type floatReader struct {
	el  *etree.Element
	err error
}

func (r *floatReader) get(name string) float64 {
	if r.err != nil {
		return 0
	}
	f, err := floatAttr(r.el, name, 0)
	r.err = err
	return f
}
