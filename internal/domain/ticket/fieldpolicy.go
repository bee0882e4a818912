package ticket

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/itops-inc/itdesk/internal/domain/ticket/valueobjects"
)

// Field names a mutable ticket attribute. The value doubles as the column
// name and the JSON key.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldCategory     Field = "category"
	FieldPriority     Field = "priority"
	FieldStatus       Field = "status"
	FieldAssignedToID Field = "assigned_to_id"
	FieldResolution   Field = "resolution"
	// FieldResolvedAt is derived server side and never accepted from a client.
	FieldResolvedAt Field = "resolved_at"
)

// ClientFields lists the fields an update request may carry.
var ClientFields = []Field{
	FieldTitle,
	FieldDescription,
	FieldCategory,
	FieldPriority,
	FieldStatus,
	FieldAssignedToID,
	FieldResolution,
}

type fieldSet map[Field]struct{}

func newFieldSet(fields ...Field) fieldSet {
	s := make(fieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

var updatableFields = map[Relation]fieldSet{
	RelationAdmin: newFieldSet(ClientFields...),
	RelationOwner: newFieldSet(FieldTitle, FieldDescription, FieldCategory, FieldPriority),
}

// CanUpdate reports whether the relation may update the ticket at all.
func CanUpdate(rel Relation) bool {
	_, ok := updatableFields[rel]
	return ok
}

// RawPatch is the decoded update request before filtering and validation.
// Text and enum fields hold string, assigned_to_id holds *uint and
// resolution holds *string; nil pointers clear the column.
type RawPatch map[Field]any

// Filter drops every field the relation may not write.
func (r RawPatch) Filter(rel Relation) RawPatch {
	allowed := updatableFields[rel]
	out := make(RawPatch, len(r))
	for f, v := range r {
		if _, ok := allowed[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Fields returns the keys in sorted order.
func (r RawPatch) Fields() []Field {
	out := make([]Field, 0, len(r))
	for f := range r {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Patch is a validated set of column changes with typed values.
type Patch map[Field]any

func (p Patch) Has(f Field) bool {
	_, ok := p[f]
	return ok
}

// Columns converts the patch into a column map for persistence and audit.
func (p Patch) Columns() map[string]any {
	out := make(map[string]any, len(p))
	for f, v := range p {
		switch val := v.(type) {
		case vo.Category:
			out[string(f)] = val.String()
		case vo.Priority:
			out[string(f)] = val.String()
		case vo.TicketStatus:
			out[string(f)] = val.String()
		default:
			out[string(f)] = val
		}
	}
	return out
}

// Validate type-checks and normalizes every field. Violations are keyed by
// field name.
func (r RawPatch) Validate() (Patch, map[string]string) {
	patch := make(Patch, len(r))
	errs := make(map[string]string)

	for _, field := range r.Fields() {
		value, msg := normalizeField(field, r[field])
		if msg != "" {
			errs[string(field)] = msg
			continue
		}
		patch[field] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return patch, nil
}

func normalizeField(field Field, raw any) (any, string) {
	switch field {
	case FieldTitle:
		return requiredText(field, raw, MaxTitleLength)
	case FieldDescription:
		return requiredText(field, raw, MaxDescriptionLength)
	case FieldCategory:
		s, ok := raw.(string)
		c := vo.Category(s)
		if !ok || !c.IsValid() {
			return nil, fmt.Sprintf("%s must be a valid category", field)
		}
		return c, ""
	case FieldPriority:
		s, ok := raw.(string)
		p := vo.Priority(s)
		if !ok || !p.IsValid() {
			return nil, fmt.Sprintf("%s must be a valid priority", field)
		}
		return p, ""
	case FieldStatus:
		s, ok := raw.(string)
		st := vo.TicketStatus(s)
		if !ok || !st.IsValid() {
			return nil, fmt.Sprintf("%s must be a valid status", field)
		}
		return st, ""
	case FieldAssignedToID:
		id, ok := raw.(*uint)
		if !ok {
			return nil, fmt.Sprintf("%s must be a user ID or null", field)
		}
		if id != nil && *id == 0 {
			return nil, fmt.Sprintf("%s must be a user ID or null", field)
		}
		return id, ""
	case FieldResolution:
		s, ok := raw.(*string)
		if !ok {
			return nil, fmt.Sprintf("%s must be text or null", field)
		}
		if s == nil {
			return (*string)(nil), ""
		}
		trimmed := strings.TrimSpace(*s)
		if trimmed == "" {
			return (*string)(nil), ""
		}
		if utf8.RuneCountInString(trimmed) > MaxResolutionLength {
			return nil, fmt.Sprintf("%s must be at most %d characters long", field, MaxResolutionLength)
		}
		return &trimmed, ""
	case FieldResolvedAt:
		if ts, ok := raw.(time.Time); ok {
			return ts, ""
		}
		return nil, fmt.Sprintf("%s is not writable", field)
	default:
		return nil, fmt.Sprintf("%s is not a ticket field", field)
	}
}

func requiredText(field Field, raw any, max int) (any, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Sprintf("%s must be text", field)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Sprintf("%s is required", field)
	}
	if utf8.RuneCountInString(s) > max {
		return nil, fmt.Sprintf("%s must be at most %d characters long", field, max)
	}
	return s, ""
}
