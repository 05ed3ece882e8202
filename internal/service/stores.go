package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/homeoremedies/remedy-finder/api/internal/entity"
	"github.com/homeoremedies/remedy-finder/api/internal/maps"
	"github.com/homeoremedies/remedy-finder/api/internal/service/geo"
)

// maxStoreResults caps how many text-search hits are enriched. The cap
// applies in provider relevance order, before distances are known.
const maxStoreResults = 5

// StoreService finds homeopathic stores near a free-text location.
// Every provider-side failure degrades to fewer or no results; the only
// way to get an error out of this service is to not call it.
type StoreService struct {
	maps maps.Client
}

// NewStoreService wires the locator. A nil client means the places
// provider is unconfigured, which is a supported degraded mode.
func NewStoreService(client maps.Client) *StoreService {
	return &StoreService{maps: client}
}

// Locate geocodes the location, searches for stores, enriches the top
// hits concurrently, and sorts them by distance when distances exist.
func (s *StoreService) Locate(ctx context.Context, location string) []entity.StoreCandidate {
	location = strings.TrimSpace(location)
	if location == "" || s.maps == nil {
		return nil
	}

	var user *maps.LatLng
	if coords, err := s.maps.Geocode(ctx, location); err != nil {
		// Distances become unavailable downstream; the search continues.
		log.Printf("store locator: geocode failed for %q: %v", location, err)
	} else {
		user = &coords
	}

	hits, err := s.maps.TextSearch(ctx, fmt.Sprintf("homeopathic medicine store in %s", location))
	if err != nil {
		// A failed search is a total miss; there is nothing to enrich.
		log.Printf("store locator: text search failed for %q: %v", location, err)
		return nil
	}
	if len(hits) == 0 {
		return nil
	}
	if len(hits) > maxStoreResults {
		hits = hits[:maxStoreResults]
	}

	candidates := make([]entity.StoreCandidate, len(hits))
	var wg sync.WaitGroup
	for i, hit := range hits {
		wg.Add(1)
		go func(i int, hit maps.Place) {
			defer wg.Done()
			candidates[i] = s.enrich(ctx, hit, user)
		}(i, hit)
	}
	wg.Wait()

	sortByDistance(candidates)
	return candidates
}

// enrich issues exactly one detail lookup for the hit and attaches the
// rounded distance when both coordinate pairs are known. A failed
// lookup keeps the hit, just without phone/website.
func (s *StoreService) enrich(ctx context.Context, hit maps.Place, user *maps.LatLng) entity.StoreCandidate {
	candidate := entity.StoreCandidate{
		Name:    hit.Name,
		Address: hit.Address,
		Rating:  hit.Rating,
		OpenNow: hit.OpenNow,
	}

	details, err := s.maps.PlaceDetails(ctx, hit.PlaceID)
	if err != nil {
		log.Printf("store locator: detail lookup failed for %q: %v", hit.PlaceID, err)
	} else {
		phone := details.InternationalPhoneNumber
		if phone == "" {
			phone = details.PhoneNumber
		}
		if normalized := normalizePhone(phone); normalized != "" {
			candidate.PhoneNumber = &normalized
		}
		if website := normalizeWebsite(details.Website); website != "" {
			candidate.Website = &website
		}
	}

	if user != nil && hit.Location != nil {
		distance := geo.RoundKm(geo.Distance(user.Lat, user.Lng, hit.Location.Lat, hit.Location.Lng))
		candidate.DistanceKm = &distance
	}

	return candidate
}

// sortByDistance orders candidates ascending by distance, with
// unknown-distance candidates after all known ones, preserving relative
// order among ties and unknowns. When no candidate has a distance the
// provider's relevance order is left untouched.
func sortByDistance(candidates []entity.StoreCandidate) {
	any := false
	for _, c := range candidates {
		if c.DistanceKm != nil {
			any = true
			break
		}
	}
	if !any {
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].DistanceKm, candidates[j].DistanceKm
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
}
