package resource

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ucsb-cs156/campus-api/internal/types"
)

// Params reads typed, required request parameters. Problems are collected
// rather than returned one at a time, so a Kind's decoder can read every
// field straight through and check Err once at the end:
//
//	p := resource.NewParams(r.Form)
//	item := types.UCSBDiningCommonsMenuItem{Name: p.String("name"), ...}
//	if err := p.Err(); err != nil { ... }
type Params struct {
	values   url.Values
	problems []string
}

func NewParams(values url.Values) *Params {
	return &Params{values: values}
}

func (p *Params) raw(name string) (string, bool) {
	vs, ok := p.values[name]
	if !ok || len(vs) == 0 {
		p.problems = append(p.problems, "missing parameter "+name)
		return "", false
	}
	return vs[0], true
}

func (p *Params) invalid(name, want string) {
	p.problems = append(p.problems, "parameter "+name+" must be "+want)
}

func (p *Params) String(name string) string {
	s, _ := p.raw(name)
	return s
}

// Key reads a caller-supplied key, which unlike other strings may not be
// empty: a record stored under "" could never be addressed again.
func (p *Params) Key(name string) string {
	s, ok := p.raw(name)
	if ok && strings.TrimSpace(s) == "" {
		p.invalid(name, "non-empty")
		return ""
	}
	return s
}

func (p *Params) Int(name string) int {
	s, ok := p.raw(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		p.invalid(name, "an integer")
		return 0
	}
	return n
}

func (p *Params) Int64(name string) int64 {
	s, ok := p.raw(name)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		p.invalid(name, "an integer")
		return 0
	}
	return n
}

func (p *Params) Bool(name string) bool {
	s, ok := p.raw(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		p.invalid(name, "true or false")
		return false
	}
	return b
}

func (p *Params) LocalDateTime(name string) types.LocalDateTime {
	s, ok := p.raw(name)
	if !ok {
		return types.LocalDateTime{}
	}
	t, err := types.ParseLocalDateTime(strings.TrimSpace(s))
	if err != nil {
		p.invalid(name, "an ISO date-time like 2025-10-28T17:35:00")
		return types.LocalDateTime{}
	}
	return t
}

func (p *Params) ZonedDateTime(name string) types.ZonedDateTime {
	s, ok := p.raw(name)
	if !ok {
		return types.ZonedDateTime{}
	}
	t, err := types.ParseZonedDateTime(strings.TrimSpace(s))
	if err != nil {
		p.invalid(name, "an RFC 3339 date-time like 2025-11-04T12:12:00Z")
		return types.ZonedDateTime{}
	}
	return t
}

// Err returns an *InvalidArgumentError listing every problem seen so far,
// or nil.
func (p *Params) Err() error {
	if len(p.problems) == 0 {
		return nil
	}
	return &InvalidArgumentError{Reason: strings.Join(p.problems, ", ")}
}
