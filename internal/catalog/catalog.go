// Package catalog declares the six record kinds served by the API and
// wires each one to a store, a controller and its routes.
package catalog

import (
	"net/http"

	"github.com/ucsb-cs156/campus-api/internal/http/handlers/crud"
	"github.com/ucsb-cs156/campus-api/internal/resource"
	"github.com/ucsb-cs156/campus-api/internal/storage"
	"github.com/ucsb-cs156/campus-api/internal/types"
)

var HelpRequests = resource.Kind[types.HelpRequest, int64]{
	Name:     "HelpRequest",
	Path:     "/api/helprequests",
	KeyParam: "id",
	ParseKey: resource.Int64Key,
	Decode: func(p *resource.Params) types.HelpRequest {
		return types.HelpRequest{
			RequesterEmail:      p.String("requesterEmail"),
			TeamID:              p.String("teamId"),
			TableOrBreakoutRoom: p.String("tableOrBreakoutRoom"),
			RequestTime:         p.LocalDateTime("requestTime"),
			Explanation:         p.String("explanation"),
			Solved:              p.Bool("solved"),
		}
	},
}

var MenuItemReviews = resource.Kind[types.MenuItemReview, int64]{
	Name:     "MenuItemReview",
	Path:     "/api/menuitemreview",
	KeyParam: "id",
	ParseKey: resource.Int64Key,
	Decode: func(p *resource.Params) types.MenuItemReview {
		return types.MenuItemReview{
			ItemID:        p.Int64("itemId"),
			ReviewerEmail: p.String("reviewerEmail"),
			Stars:         p.Int("stars"),
			DateReviewed:  p.LocalDateTime("dateReviewed"),
			Comments:      p.String("comments"),
		}
	},
}

var DiningCommonsMenuItems = resource.Kind[types.UCSBDiningCommonsMenuItem, int64]{
	Name:     "UCSBDiningCommonsMenuItem",
	Path:     "/api/UCSBDiningCommonsMenuItem",
	KeyParam: "id",
	ParseKey: resource.Int64Key,
	Decode: func(p *resource.Params) types.UCSBDiningCommonsMenuItem {
		return types.UCSBDiningCommonsMenuItem{
			DiningCommonsCode: p.String("diningCommonsCode"),
			Name:              p.String("name"),
			Station:           p.String("station"),
		}
	},
}

var RecommendationRequests = resource.Kind[types.RecommendationRequest, int64]{
	Name:     "RecommendationRequest",
	Path:     "/api/recommendationrequest",
	KeyParam: "id",
	ParseKey: resource.Int64Key,
	Decode: func(p *resource.Params) types.RecommendationRequest {
		return types.RecommendationRequest{
			RequesterEmail: p.String("requesterEmail"),
			ProfessorEmail: p.String("professorEmail"),
			Explanation:    p.String("explanation"),
			DateRequested:  p.ZonedDateTime("dateRequested"),
			DateNeeded:     p.ZonedDateTime("dateNeeded"),
			Done:           p.Bool("done"),
		}
	},
}

var Organizations = resource.Kind[types.UCSBOrganization, string]{
	Name:     "UCSBOrganization",
	Path:     "/api/ucsborganization",
	KeyParam: "orgCode",
	ParseKey: resource.StringKey,
	Decode: func(p *resource.Params) types.UCSBOrganization {
		return types.UCSBOrganization{
			OrgCode:             p.Key("orgCode"),
			OrgTranslationShort: p.String("orgTranslationShort"),
			OrgTranslation:      p.String("orgTranslation"),
			Inactive:            p.Bool("inactive"),
		}
	},
}

var Articles = resource.Kind[types.Article, int64]{
	Name:     "Article",
	Path:     "/api/articles",
	KeyParam: "id",
	ParseKey: resource.Int64Key,
	Decode: func(p *resource.Params) types.Article {
		return types.Article{
			Title:       p.String("title"),
			URL:         p.String("url"),
			Explanation: p.String("explanation"),
			Email:       p.String("email"),
			DateAdded:   p.LocalDateTime("dateAdded"),
		}
	},
}

// Stores holds one store per kind.
type Stores struct {
	HelpRequests           storage.Store[types.HelpRequest, int64]
	MenuItemReviews        storage.Store[types.MenuItemReview, int64]
	DiningCommonsMenuItems storage.Store[types.UCSBDiningCommonsMenuItem, int64]
	RecommendationRequests storage.Store[types.RecommendationRequest, int64]
	Organizations          storage.Store[types.UCSBOrganization, string]
	Articles               storage.Store[types.Article, int64]
}

// Register mounts the routes of every kind on mux.
func Register(mux *http.ServeMux, s Stores) {
	crud.Register(mux, resource.New(HelpRequests, s.HelpRequests))
	crud.Register(mux, resource.New(MenuItemReviews, s.MenuItemReviews))
	crud.Register(mux, resource.New(DiningCommonsMenuItems, s.DiningCommonsMenuItems))
	crud.Register(mux, resource.New(RecommendationRequests, s.RecommendationRequests))
	crud.Register(mux, resource.New(Organizations, s.Organizations))
	crud.Register(mux, resource.New(Articles, s.Articles))
}
