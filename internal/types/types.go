// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles;
// handlers, storage, and the resource layer can all import types without
// depending on each other.
package types

// Entity is the constraint every stored record satisfies.
//
// E is the record type itself and K its key type. WithKey returns a copy
// so records can be passed around by value without aliasing surprises:
//
//	saved := review.WithKey(42)
type Entity[E any, K comparable] interface {
	Key() K
	WithKey(K) E
}

// Struct tags serve three purposes on every record below:
//
//  1. json:"..."     field names on the wire (camelCase, as the front end expects).
//  2. db:"..."       column names used by the SQL stores (sqlx mapping).
//  3. validate:"..." rules checked by go-playground/validator before persistence.

// HelpRequest is a request for help raised by a team during a lab section.
type HelpRequest struct {
	ID                  int64         `json:"id"                  db:"id"`
	RequesterEmail      string        `json:"requesterEmail"      db:"requester_email"`
	TeamID              string        `json:"teamId"              db:"team_id"`
	TableOrBreakoutRoom string        `json:"tableOrBreakoutRoom" db:"table_or_breakout_room"`
	RequestTime         LocalDateTime `json:"requestTime"         db:"request_time"`
	Explanation         string        `json:"explanation"         db:"explanation"`
	Solved              bool          `json:"solved"              db:"solved"`
}

func (h HelpRequest) Key() int64 { return h.ID }

func (h HelpRequest) WithKey(id int64) HelpRequest {
	h.ID = id
	return h
}

// MenuItemReview is a star rating left for a dining commons menu item.
// Stars is the only constrained field in the whole system.
type MenuItemReview struct {
	ID            int64         `json:"id"            db:"id"`
	ItemID        int64         `json:"itemId"        db:"item_id"`
	ReviewerEmail string        `json:"reviewerEmail" db:"reviewer_email"`
	Stars         int           `json:"stars"         db:"stars" validate:"min=0,max=5"`
	DateReviewed  LocalDateTime `json:"dateReviewed"  db:"date_reviewed"`
	Comments      string        `json:"comments"      db:"comments"`
}

func (m MenuItemReview) Key() int64 { return m.ID }

func (m MenuItemReview) WithKey(id int64) MenuItemReview {
	m.ID = id
	return m
}

// UCSBDiningCommonsMenuItem is a dish served at a station of a dining commons.
type UCSBDiningCommonsMenuItem struct {
	ID                int64  `json:"id"                db:"id"`
	DiningCommonsCode string `json:"diningCommonsCode" db:"dining_commons_code"`
	Name              string `json:"name"              db:"name"`
	Station           string `json:"station"           db:"station"`
}

func (d UCSBDiningCommonsMenuItem) Key() int64 { return d.ID }

func (d UCSBDiningCommonsMenuItem) WithKey(id int64) UCSBDiningCommonsMenuItem {
	d.ID = id
	return d
}

// RecommendationRequest tracks a student's request for a letter of
// recommendation. Its dates carry a zone, unlike the other records.
type RecommendationRequest struct {
	ID             int64         `json:"id"             db:"id"`
	RequesterEmail string        `json:"requesterEmail" db:"requester_email"`
	ProfessorEmail string        `json:"professorEmail" db:"professor_email"`
	Explanation    string        `json:"explanation"    db:"explanation"`
	DateRequested  ZonedDateTime `json:"dateRequested"  db:"date_requested"`
	DateNeeded     ZonedDateTime `json:"dateNeeded"     db:"date_needed"`
	Done           bool          `json:"done"           db:"done"`
}

func (r RecommendationRequest) Key() int64 { return r.ID }

func (r RecommendationRequest) WithKey(id int64) RecommendationRequest {
	r.ID = id
	return r
}

// UCSBOrganization is a student organization, keyed by its short code
// (e.g. "ZPR") rather than a generated id.
type UCSBOrganization struct {
	OrgCode             string `json:"orgCode"             db:"org_code"`
	OrgTranslationShort string `json:"orgTranslationShort" db:"org_translation_short"`
	OrgTranslation      string `json:"orgTranslation"      db:"org_translation"`
	Inactive            bool   `json:"inactive"            db:"inactive"`
}

func (o UCSBOrganization) Key() string { return o.OrgCode }

func (o UCSBOrganization) WithKey(code string) UCSBOrganization {
	o.OrgCode = code
	return o
}

// Article is a news link shared by a user.
type Article struct {
	ID          int64         `json:"id"          db:"id"`
	Title       string        `json:"title"       db:"title"`
	URL         string        `json:"url"         db:"url"`
	Explanation string        `json:"explanation" db:"explanation"`
	Email       string        `json:"email"       db:"email"`
	DateAdded   LocalDateTime `json:"dateAdded"   db:"date_added"`
}

func (a Article) Key() int64 { return a.ID }

func (a Article) WithKey(id int64) Article {
	a.ID = id
	return a
}
