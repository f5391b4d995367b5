package services

import (
	"strconv"
)

// DealLookup identifies a deal either by numeric id or by slug.
type DealLookup struct {
	id   uint
	slug string
	byID bool
}

func ByID(id uint) DealLookup {
	return DealLookup{id: id, byID: true}
}

func BySlug(slug string) DealLookup {
	return DealLookup{slug: slug}
}

// ParseDealLookup treats an all-digit path segment as an id and anything else as a slug.
func ParseDealLookup(segment string) DealLookup {
	if segment != "" && isDigits(segment) {
		if id, err := strconv.ParseUint(segment, 10, 64); err == nil && uint64(uint(id)) == id {
			return ByID(uint(id))
		}
	}
	return BySlug(segment)
}

func (l DealLookup) IsID() bool {
	return l.byID
}

func (l DealLookup) ID() uint {
	return l.id
}

func (l DealLookup) Slug() string {
	return l.slug
}

func (l DealLookup) String() string {
	if l.byID {
		return "id:" + strconv.FormatUint(uint64(l.id), 10)
	}
	return "slug:" + l.slug
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
