package catalog

import (
	"github.com/ucsb-cs156/campus-api/internal/storage/memory"
	"github.com/ucsb-cs156/campus-api/internal/storage/sqldb"
	"github.com/ucsb-cs156/campus-api/internal/types"
)

// Tables maps each kind onto its SQL table. Column names must match the
// db tags in package types and the migrations.
var Tables = struct {
	HelpRequests           sqldb.Table
	MenuItemReviews        sqldb.Table
	DiningCommonsMenuItems sqldb.Table
	RecommendationRequests sqldb.Table
	Organizations          sqldb.Table
	Articles               sqldb.Table
}{
	HelpRequests: sqldb.Table{
		Name:         "help_requests",
		Key:          "id",
		GeneratedKey: true,
		Columns: []string{"requester_email", "team_id", "table_or_breakout_room",
			"request_time", "explanation", "solved"},
	},
	MenuItemReviews: sqldb.Table{
		Name:         "menu_item_reviews",
		Key:          "id",
		GeneratedKey: true,
		Columns:      []string{"item_id", "reviewer_email", "stars", "date_reviewed", "comments"},
	},
	DiningCommonsMenuItems: sqldb.Table{
		Name:         "ucsb_dining_commons_menu_items",
		Key:          "id",
		GeneratedKey: true,
		Columns:      []string{"dining_commons_code", "name", "station"},
	},
	RecommendationRequests: sqldb.Table{
		Name:         "recommendation_requests",
		Key:          "id",
		GeneratedKey: true,
		Columns: []string{"requester_email", "professor_email", "explanation",
			"date_requested", "date_needed", "done"},
	},
	Organizations: sqldb.Table{
		Name:    "ucsb_organizations",
		Key:     "org_code",
		Columns: []string{"org_translation_short", "org_translation", "inactive"},
	},
	Articles: sqldb.Table{
		Name:         "articles",
		Key:          "id",
		GeneratedKey: true,
		Columns:      []string{"title", "url", "explanation", "email", "date_added"},
	},
}

// SQLStores backs every kind with its table in db.
func SQLStores(db *sqldb.DB) Stores {
	return Stores{
		HelpRequests:           sqldb.NewStore[types.HelpRequest, int64](db, Tables.HelpRequests),
		MenuItemReviews:        sqldb.NewStore[types.MenuItemReview, int64](db, Tables.MenuItemReviews),
		DiningCommonsMenuItems: sqldb.NewStore[types.UCSBDiningCommonsMenuItem, int64](db, Tables.DiningCommonsMenuItems),
		RecommendationRequests: sqldb.NewStore[types.RecommendationRequest, int64](db, Tables.RecommendationRequests),
		Organizations:          sqldb.NewStore[types.UCSBOrganization, string](db, Tables.Organizations),
		Articles:               sqldb.NewStore[types.Article, int64](db, Tables.Articles),
	}
}

// MemoryStores backs every kind with a fresh in-memory store.
func MemoryStores() Stores {
	return Stores{
		HelpRequests:           memory.New[types.HelpRequest](memory.Sequence()),
		MenuItemReviews:        memory.New[types.MenuItemReview](memory.Sequence()),
		DiningCommonsMenuItems: memory.New[types.UCSBDiningCommonsMenuItem](memory.Sequence()),
		RecommendationRequests: memory.New[types.RecommendationRequest](memory.Sequence()),
		Organizations:          memory.New[types.UCSBOrganization, string](nil),
		Articles:               memory.New[types.Article](memory.Sequence()),
	}
}
