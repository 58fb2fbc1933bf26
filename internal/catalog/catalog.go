// Package catalog holds the fixed vending catalogs: locations, products,
// base foot-traffic numbers, per-pair weights, and weather factors.
// The tables are game constants and never change mid-session.
package catalog

import "fmt"

// Location is one of the six fixed vending sites.
type Location uint8

const (
	LocCentrum Location = iota
	LocKampus
	LocPark
	LocStadion
	LocDworzec
	LocPlaza

	locationCount
)

// Product is one of the three frozen-treat items.
type Product uint8

const (
	ProdLody Product = iota
	ProdJogurt
	ProdShake

	productCount
)

// Weather is the session-wide condition drawn once at game start.
type Weather uint8

const (
	WeatherSunny Weather = iota
	WeatherRainy
	WeatherCloudy

	weatherCount
)

var locationNames = [locationCount]string{
	"Centrum", "Kampus", "Park", "Stadion", "Dworzec", "Plaża",
}

var productNames = [productCount]string{
	"Lody", "Mrożony jogurt", "Shake owocowy",
}

var weatherNames = [weatherCount]string{
	"Słonecznie", "Deszczowo", "Pochmurno",
}

// baseDemand is the per-location foot-traffic anchor.
var baseDemand = [locationCount]int{
	LocCentrum: 100,
	LocKampus:  80,
	LocPark:    60,
	LocStadion: 40,
	LocDworzec: 70,
	LocPlaza:   150,
}

// pairWeights holds the per-(location, product) demand multipliers.
var pairWeights = [locationCount][productCount]float64{
	LocCentrum: {ProdLody: 1.2, ProdJogurt: 1.0, ProdShake: 0.9},
	LocKampus:  {ProdLody: 0.8, ProdJogurt: 1.5, ProdShake: 1.3},
	LocPark:    {ProdLody: 1.1, ProdJogurt: 1.2, ProdShake: 1.4},
	LocStadion: {ProdLody: 1.7, ProdJogurt: 0.5, ProdShake: 1.1},
	LocDworzec: {ProdLody: 0.7, ProdJogurt: 0.9, ProdShake: 1.6},
	LocPlaza:   {ProdLody: 2.0, ProdJogurt: 1.2, ProdShake: 0.6},
}

// weatherFactors scale every pair's base demand for the whole session.
var weatherFactors = [weatherCount]float64{
	WeatherSunny:  1.2,
	WeatherRainy:  0.7,
	WeatherCloudy: 1.0,
}

func (l Location) String() string {
	if l >= locationCount {
		return fmt.Sprintf("Location#%d", uint8(l))
	}
	return locationNames[l]
}

func (p Product) String() string {
	if p >= productCount {
		return fmt.Sprintf("Product#%d", uint8(p))
	}
	return productNames[p]
}

func (w Weather) String() string {
	if w >= weatherCount {
		return fmt.Sprintf("Weather#%d", uint8(w))
	}
	return weatherNames[w]
}

// Valid reports whether the location is part of the catalog.
func (l Location) Valid() bool { return l < locationCount }

// Valid reports whether the product is part of the catalog.
func (p Product) Valid() bool { return p < productCount }

// BaseDemand returns the foot-traffic anchor for a location.
func (l Location) BaseDemand() int { return baseDemand[l] }

// Weight returns the demand multiplier for a (location, product) pair.
func Weight(l Location, p Product) float64 { return pairWeights[l][p] }

// Factor returns the session demand multiplier for a weather condition.
func (w Weather) Factor() float64 { return weatherFactors[w] }

// Locations returns all catalog locations in declaration order.
func Locations() []Location {
	out := make([]Location, locationCount)
	for i := range out {
		out[i] = Location(i)
	}
	return out
}

// Products returns all catalog products in declaration order.
func Products() []Product {
	out := make([]Product, productCount)
	for i := range out {
		out[i] = Product(i)
	}
	return out
}

// Weathers returns the possible session conditions in declaration order.
func Weathers() []Weather {
	out := make([]Weather, weatherCount)
	for i := range out {
		out[i] = Weather(i)
	}
	return out
}

// ParseLocation resolves a display name back to a catalog location.
func ParseLocation(name string) (Location, bool) {
	for i, n := range locationNames {
		if n == name {
			return Location(i), true
		}
	}
	return 0, false
}

// ParseWeather resolves a display name back to a weather condition.
func ParseWeather(name string) (Weather, bool) {
	for i, n := range weatherNames {
		if n == name {
			return Weather(i), true
		}
	}
	return 0, false
}

// ParseProduct resolves a display name back to a catalog product.
func ParseProduct(name string) (Product, bool) {
	for i, n := range productNames {
		if n == name {
			return Product(i), true
		}
	}
	return 0, false
}
