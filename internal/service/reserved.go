package service

import "strings"

// ReservedRoutes lists URL segments claimed by system, content and page
// routes. A segment on this list can never be a user handle; routers check
// it before attempting resolution.
var ReservedRoutes = []string{
	"admin",
	"api",
	"archive",
	"assets",
	"auth",
	"categories",
	"dashboard",
	"drafts",
	"feed",
	"login",
	"logout",
	"media",
	"pages",
	"posts",
	"rss",
	"search",
	"settings",
	"signup",
	"sitemap",
	"static",
	"tags",
	"uploads",
}

// IsReserved reports whether a URL segment is a reserved route. Matching is
// case-insensitive and whole-segment only.
func IsReserved(segment string) bool {
	for _, route := range ReservedRoutes {
		if strings.EqualFold(segment, route) {
			return true
		}
	}
	return false
}
