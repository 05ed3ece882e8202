package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/homeoremedies/remedy-finder/api/internal/maps"
)

type fakeMapsClient struct {
	mu           sync.Mutex
	geocode      func(ctx context.Context, address string) (maps.LatLng, error)
	textSearch   func(ctx context.Context, query string) ([]maps.Place, error)
	placeDetails func(ctx context.Context, placeID string) (maps.Details, error)
	detailCalls  []string
}

func (f *fakeMapsClient) Geocode(ctx context.Context, address string) (maps.LatLng, error) {
	if f.geocode != nil {
		return f.geocode(ctx, address)
	}
	return maps.LatLng{}, errors.New("geocode not implemented")
}

func (f *fakeMapsClient) TextSearch(ctx context.Context, query string) ([]maps.Place, error) {
	if f.textSearch != nil {
		return f.textSearch(ctx, query)
	}
	return nil, errors.New("text search not implemented")
}

func (f *fakeMapsClient) PlaceDetails(ctx context.Context, placeID string) (maps.Details, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, placeID)
	f.mu.Unlock()
	if f.placeDetails != nil {
		return f.placeDetails(ctx, placeID)
	}
	return maps.Details{}, errors.New("details not implemented")
}

func placeAt(id string, lat, lng float64) maps.Place {
	return maps.Place{
		PlaceID:  id,
		Name:     "Store " + id,
		Address:  id + " Main St",
		Location: &maps.LatLng{Lat: lat, Lng: lng},
	}
}

func TestStoreService_Locate_DegradedModes(t *testing.T) {
	t.Run("empty location", func(t *testing.T) {
		client := &fakeMapsClient{}
		svc := NewStoreService(client)
		if stores := svc.Locate(context.Background(), "   "); stores != nil {
			t.Fatalf("expected nil for whitespace location, got %+v", stores)
		}
		if len(client.detailCalls) != 0 {
			t.Fatalf("expected no outbound calls for empty location")
		}
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		svc := NewStoreService(nil)
		if stores := svc.Locate(context.Background(), "Calgary, AB"); stores != nil {
			t.Fatalf("expected nil when provider unconfigured, got %+v", stores)
		}
	})

	t.Run("search failure is a total miss", func(t *testing.T) {
		svc := NewStoreService(&fakeMapsClient{
			geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
				return maps.LatLng{Lat: 51, Lng: -114}, nil
			},
			textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
				return nil, errors.New("quota exceeded")
			},
		})
		if stores := svc.Locate(context.Background(), "Calgary, AB"); stores != nil {
			t.Fatalf("expected nil on search failure, got %+v", stores)
		}
	})

	t.Run("no hits", func(t *testing.T) {
		svc := NewStoreService(&fakeMapsClient{
			geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
				return maps.LatLng{Lat: 51, Lng: -114}, nil
			},
			textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
				return nil, nil
			},
		})
		if stores := svc.Locate(context.Background(), "Calgary, AB"); stores != nil {
			t.Fatalf("expected nil for zero hits, got %+v", stores)
		}
	})
}

func TestStoreService_Locate_GeocodeFailureDropsDistances(t *testing.T) {
	client := &fakeMapsClient{
		geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
			return maps.LatLng{}, maps.ErrZeroResults
		},
		textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
			return []maps.Place{placeAt("a", 51.1, -114.1), placeAt("b", 51.2, -114.2)}, nil
		},
		placeDetails: func(ctx context.Context, placeID string) (maps.Details, error) {
			return maps.Details{}, nil
		},
	}

	stores := NewStoreService(client).Locate(context.Background(), "Calgary, AB")
	if len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(stores))
	}
	// Provider relevance order is preserved when no distances exist.
	if stores[0].Name != "Store a" || stores[1].Name != "Store b" {
		t.Fatalf("expected provider order preserved, got %+v", stores)
	}
	for _, s := range stores {
		if s.DistanceKm != nil {
			t.Fatalf("expected no distance without user coordinates, got %+v", s)
		}
	}
}

func TestStoreService_Locate_SortsByDistance(t *testing.T) {
	user := maps.LatLng{Lat: 51.0, Lng: -114.0}
	noCoords := maps.Place{PlaceID: "d", Name: "Store d", Address: "4 Main St"}
	client := &fakeMapsClient{
		geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
			return user, nil
		},
		textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
			return []maps.Place{
				placeAt("far", 52.0, -114.0),
				noCoords,
				placeAt("near", 51.01, -114.0),
				placeAt("mid", 51.5, -114.0),
			}, nil
		},
		placeDetails: func(ctx context.Context, placeID string) (maps.Details, error) {
			return maps.Details{}, nil
		},
	}

	stores := NewStoreService(client).Locate(context.Background(), "Calgary, AB")
	if len(stores) != 4 {
		t.Fatalf("expected 4 stores, got %d", len(stores))
	}

	if stores[0].Name != "Store near" || stores[1].Name != "Store mid" || stores[2].Name != "Store far" {
		t.Fatalf("expected ascending distance order, got %+v", stores)
	}
	if stores[3].Name != "Store d" || stores[3].DistanceKm != nil {
		t.Fatalf("expected distance-less store last, got %+v", stores[3])
	}
	for i := 0; i < 2; i++ {
		if *stores[i].DistanceKm > *stores[i+1].DistanceKm {
			t.Fatalf("distances not non-decreasing: %+v", stores)
		}
	}
}

func TestStoreService_Locate_CapsAtFiveHits(t *testing.T) {
	hits := make([]maps.Place, 0, 7)
	for i := 0; i < 7; i++ {
		hits = append(hits, placeAt(fmt.Sprintf("p%d", i), 51.0+float64(i)*0.01, -114.0))
	}

	client := &fakeMapsClient{
		geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
			return maps.LatLng{Lat: 51, Lng: -114}, nil
		},
		textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
			return hits, nil
		},
		placeDetails: func(ctx context.Context, placeID string) (maps.Details, error) {
			return maps.Details{}, nil
		},
	}

	stores := NewStoreService(client).Locate(context.Background(), "Calgary, AB")
	if len(stores) != 5 {
		t.Fatalf("expected cap of 5 stores, got %d", len(stores))
	}
	if len(client.detailCalls) != 5 {
		t.Fatalf("expected exactly 5 detail lookups, got %d", len(client.detailCalls))
	}
}

func TestStoreService_Locate_DetailFailureKeepsHit(t *testing.T) {
	client := &fakeMapsClient{
		geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
			return maps.LatLng{Lat: 51, Lng: -114}, nil
		},
		textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
			return []maps.Place{placeAt("ok", 51.1, -114.0), placeAt("broken", 51.2, -114.0)}, nil
		},
		placeDetails: func(ctx context.Context, placeID string) (maps.Details, error) {
			if placeID == "broken" {
				return maps.Details{}, errors.New("details unavailable")
			}
			return maps.Details{InternationalPhoneNumber: "+1 403-555-0101", Website: "https://store.example"}, nil
		},
	}

	stores := NewStoreService(client).Locate(context.Background(), "Calgary, AB")
	if len(stores) != 2 {
		t.Fatalf("expected both hits kept, got %d", len(stores))
	}

	var withDetails, withoutDetails int
	for _, s := range stores {
		if s.PhoneNumber != nil {
			withDetails++
			if *s.PhoneNumber != "+14035550101" {
				t.Fatalf("expected E.164 phone, got %q", *s.PhoneNumber)
			}
			if s.Website == nil || *s.Website != "https://store.example" {
				t.Fatalf("expected website enriched, got %+v", s.Website)
			}
		} else {
			withoutDetails++
		}
		if s.DistanceKm == nil {
			t.Fatalf("expected distance for every hit with coordinates")
		}
	}
	if withDetails != 1 || withoutDetails != 1 {
		t.Fatalf("expected one enriched and one bare hit, got %d/%d", withDetails, withoutDetails)
	}
}

func TestStoreService_Locate_DistanceRounding(t *testing.T) {
	client := &fakeMapsClient{
		geocode: func(ctx context.Context, address string) (maps.LatLng, error) {
			return maps.LatLng{Lat: 0, Lng: 0}, nil
		},
		textSearch: func(ctx context.Context, query string) ([]maps.Place, error) {
			return []maps.Place{placeAt("eq", 0, 1)}, nil
		},
		placeDetails: func(ctx context.Context, placeID string) (maps.Details, error) {
			return maps.Details{}, nil
		},
	}

	stores := NewStoreService(client).Locate(context.Background(), "Gulf of Guinea")
	if len(stores) != 1 || stores[0].DistanceKm == nil {
		t.Fatalf("expected one store with distance, got %+v", stores)
	}
	// One equatorial degree is ~111.19 km; rounded to one decimal.
	if *stores[0].DistanceKm != 111.2 {
		t.Fatalf("expected 111.2 km, got %f", *stores[0].DistanceKm)
	}
}
