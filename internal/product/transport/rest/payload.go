package rest

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/abgdnv/gocatalog/internal/product/service"
)

// maxCount is the largest count that is still an exact integer in a JSON number.
const maxCount = 1<<53 - 1

// payload holds the raw fields of a product request body.
// A field of the wrong type is recorded in malformed and read as absent, so the
// service can report it together with the other validation errors.
type payload struct {
	fields    map[string]json.RawMessage
	malformed map[string]string
}

func newPayload(fields map[string]json.RawMessage) *payload {
	return &payload{fields: fields, malformed: map[string]string{}}
}

func (p *payload) createDto() service.ProductCreateDto {
	dto := service.ProductCreateDto{
		Price: p.number("price"),
		Count: p.integer("count"),
	}
	if v := p.text("name"); v != nil {
		dto.Name = *v
	}
	if v := p.text("category"); v != nil {
		dto.Category = *v
	}
	if v := p.text("description"); v != nil {
		dto.Description = *v
	}
	dto.Malformed = p.malformed
	return dto
}

func (p *payload) updateDto() service.ProductUpdateDto {
	return service.ProductUpdateDto{
		Name:        p.text("name"),
		Category:    p.text("category"),
		Description: p.text("description"),
		Price:       p.number("price"),
		Count:       p.integer("count"),
		Malformed:   p.malformed,
	}
}

// raw returns the field's JSON value, or nil when it is missing or null.
func (p *payload) raw(name string) json.RawMessage {
	v, ok := p.fields[name]
	if !ok || bytes.Equal(v, []byte("null")) {
		return nil
	}
	return v
}

func (p *payload) text(name string) *string {
	v := p.raw(name)
	if v == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		p.malformed[name] = "must be a string"
		return nil
	}
	return &s
}

func (p *payload) number(name string) *float64 {
	v := p.raw(name)
	if v == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		p.malformed[name] = "must be a number"
		return nil
	}
	return &f
}

// integer accepts any integer-valued JSON number, so 100, 100.0 and 1e2 are the same count.
func (p *payload) integer(name string) *int {
	v := p.raw(name)
	if v == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil || f != math.Trunc(f) || math.Abs(f) > maxCount {
		p.malformed[name] = "must be an integer"
		return nil
	}
	i := int(f)
	return &i
}
