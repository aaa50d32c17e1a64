package server

import (
	"encoding/json"
	"strings"

	"github.com/daschober/planesketch/pkg/errors"
	"github.com/daschober/planesketch/pkg/expr"
	"github.com/daschober/planesketch/pkg/geom"
	"github.com/daschober/planesketch/pkg/scene"
)

// exprField is a numeric patch field that accepts either a JSON number
// or an expression string like "2*pi/3" or "sqrt(2)". Absent fields stay
// unset so the patch only touches what the client sent.
type exprField struct {
	raw string
	set bool
}

func (f *exprField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string: keep the raw number text for the evaluator.
		s = string(data)
	}
	f.raw = strings.TrimSpace(s)
	f.set = true
	return nil
}

// value evaluates the field. An invalid expression rejects the whole
// patch, so the entity's prior value is retained.
func (f *exprField) value() (*float64, error) {
	if !f.set {
		return nil, nil
	}
	v, err := expr.Eval(f.raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "expression %q", f.raw)
	}
	return &v, nil
}

// patchRequest is the JSON body of an entity PATCH. Structure mirrors
// scene.Patch with every numeric field widened to an expression.
type patchRequest struct {
	Name   *string   `json:"name"`
	Color  *string   `json:"color"`
	Hidden *bool     `json:"hidden"`
	Deps   *[]string `json:"deps"`

	Free *bool `json:"free"`

	X             exprField `json:"x"`
	Y             exprField `json:"y"`
	OnLine        *string   `json:"on_line"`
	SolutionIndex *int      `json:"solution_index"`

	A     exprField `json:"a"`
	B     exprField `json:"b"`
	C     exprField `json:"c"`
	P1    *string   `json:"p1"`
	P2    *string   `json:"p2"`
	Pivot *string   `json:"pivot"`
	Angle exprField `json:"angle"`

	CX       exprField `json:"cx"`
	CY       exprField `json:"cy"`
	SemiA    exprField `json:"semi_a"`
	SemiB    exprField `json:"semi_b"`
	Rotation exprField `json:"rotation"`

	// Coeffs is a direct general-coefficient edit, six expressions in
	// the order a, b, c, d, e, f.
	Coeffs *[6]exprField `json:"coeffs"`
}

// toPatch validates and evaluates the request into a scene patch.
func (req patchRequest) toPatch() (scene.Patch, error) {
	p := scene.Patch{
		Name:          req.Name,
		Hidden:        req.Hidden,
		Deps:          req.Deps,
		Free:          req.Free,
		OnLine:        req.OnLine,
		SolutionIndex: req.SolutionIndex,
		P1:            req.P1,
		P2:            req.P2,
		Pivot:         req.Pivot,
	}

	if req.Color != nil {
		if err := errors.ValidateColor(*req.Color); err != nil {
			return scene.Patch{}, err
		}
		p.Color = req.Color
	}
	if req.Name != nil {
		if err := errors.ValidateEntityName(*req.Name); err != nil {
			return scene.Patch{}, err
		}
	}

	fields := []struct {
		src exprField
		dst **float64
	}{
		{req.X, &p.X},
		{req.Y, &p.Y},
		{req.A, &p.A},
		{req.B, &p.B},
		{req.C, &p.C},
		{req.Angle, &p.Angle},
		{req.CX, &p.CX},
		{req.CY, &p.CY},
		{req.SemiA, &p.SemiA},
		{req.SemiB, &p.SemiB},
		{req.Rotation, &p.Rotation},
	}
	for _, f := range fields {
		v, err := f.src.value()
		if err != nil {
			return scene.Patch{}, err
		}
		*f.dst = v
	}

	if req.Coeffs != nil {
		var c geom.Coeffs
		dst := []*float64{&c.A, &c.B, &c.C, &c.D, &c.E, &c.F}
		for i, f := range req.Coeffs {
			v, err := f.value()
			if err != nil {
				return scene.Patch{}, err
			}
			if v == nil {
				return scene.Patch{}, errors.New(errors.ErrCodeInvalidInput, "coeffs requires all six values")
			}
			*dst[i] = *v
		}
		p.Coeffs = &c
	}

	return p, nil
}
