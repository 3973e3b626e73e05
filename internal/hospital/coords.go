package hospital

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Directory is the facility name -> coordinate lookup. It is populated
// out-of-band (seed table, geocoding job) and treated as eventually
// consistent and possibly incomplete: a name that is missing here simply
// drops out of distance-based ranking.
type Directory struct {
	mu     sync.RWMutex
	coords map[string]Coordinate
}

func NewDirectory() *Directory {
	return &Directory{coords: make(map[string]Coordinate)}
}

// LoadDirectory reads a coordinates JSON file ({"Name": {"lat":..,"lng":..}}).
// A missing file yields the seed table rather than an error.
func LoadDirectory(path string) (*Directory, error) {
	d := NewDirectory()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			d.coords = cloneCoords(SeedCoordinates)
			return d, nil
		}
		return nil, fmt.Errorf("read coordinates %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &d.coords); err != nil {
		return nil, fmt.Errorf("parse coordinates %s: %w", path, err)
	}
	return d, nil
}

// Set records or updates one facility coordinate.
func (d *Directory) Set(name string, c Coordinate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.coords[name] = c
}

// Lookup returns the coordinate stored under the exact name.
func (d *Directory) Lookup(name string) (Coordinate, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.coords[name]
	return c, ok
}

// Snapshot returns a copy of the current table for fuzzy resolution.
func (d *Directory) Snapshot() map[string]Coordinate {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return cloneCoords(d.coords)
}

// SaveTo writes the current table to path.
func (d *Directory) SaveTo(path string) error {
	d.mu.RLock()
	data, err := json.MarshalIndent(d.coords, "", "  ")
	d.mu.RUnlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func cloneCoords(src map[string]Coordinate) map[string]Coordinate {
	out := make(map[string]Coordinate, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// SeedCoordinates is the static table for the Alberta facility network,
// used until the geocoding job has produced a fresher file.
var SeedCoordinates = map[string]Coordinate{
	"Alberta Children's Hospital":            {Lat: 51.0706, Lng: -114.1593},
	"Foothills Medical Centre":               {Lat: 51.0651, Lng: -114.1302},
	"Peter Lougheed Centre":                  {Lat: 51.0736, Lng: -113.9574},
	"Rockyview General Hospital":             {Lat: 50.9839, Lng: -114.0975},
	"South Health Campus":                    {Lat: 50.8849, Lng: -113.9581},
	"Airdrie Community Health Centre":        {Lat: 51.2917, Lng: -114.0144},
	"Cochrane Community Health Centre":       {Lat: 51.1894, Lng: -114.4677},
	"Okotoks Health and Wellness Centre":     {Lat: 50.7256, Lng: -113.9749},
	"Sheldon M. Chumir Centre":               {Lat: 51.0425, Lng: -114.0647},
	"South Calgary Health Centre":            {Lat: 50.9306, Lng: -114.0427},
	"Devon General Hospital":                 {Lat: 53.3652, Lng: -113.7353},
	"Fort Sask Community Hospital":           {Lat: 53.7180, Lng: -113.2094},
	"Grey Nuns Community Hospital":           {Lat: 53.4840, Lng: -113.4439},
	"Leduc Community Hospital":               {Lat: 53.2590, Lng: -113.5448},
	"Misericordia Community Hospital":        {Lat: 53.5265, Lng: -113.5561},
	"Northeast Community Health Centre":      {Lat: 53.6020, Lng: -113.4411},
	"Royal Alexandra Hospital":               {Lat: 53.5491, Lng: -113.4965},
	"Stollery Children's Hospital":           {Lat: 53.5215, Lng: -113.5266},
	"Strathcona Community Hospital":          {Lat: 53.6071, Lng: -113.3046},
	"Sturgeon Community Hospital":            {Lat: 53.6731, Lng: -113.6229},
	"University of Alberta Hospital":         {Lat: 53.5225, Lng: -113.5301},
	"WestView Health Centre":                 {Lat: 53.5283, Lng: -114.0089},
	"Red Deer Regional Hospital":             {Lat: 52.2690, Lng: -113.8112},
	"Innisfail Health Centre":                {Lat: 52.0336, Lng: -113.9589},
	"Lacombe Hospital and Care Centre":       {Lat: 52.4673, Lng: -113.7366},
	"Chinook Regional Hospital":              {Lat: 49.6935, Lng: -112.8418},
	"Medicine Hat Regional Hospital":         {Lat: 50.0290, Lng: -110.7034},
	"Grande Prairie Regional Hospital":       {Lat: 55.1700, Lng: -118.7947},
	"Northern Lights Regional Health Centre": {Lat: 56.7266, Lng: -111.3810},
}
